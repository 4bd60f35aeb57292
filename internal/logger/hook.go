package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook là hook xử lý log bất đồng bộ để tránh blocking goroutine gọi log
type AsyncHook struct {
	entries chan *logrus.Entry
	writers []io.Writer
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters tạo async hook ghi vào danh sách writers
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		entries: make(chan *logrus.Entry, bufferSize),
		writers: writers,
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về tất cả log levels mà hook xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào channel, không blocking nếu channel đầy
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	// Copy entry để tránh data race khi caller tiếp tục sửa entry
	entryCopy := entry.Dup()
	entryCopy.Level = entry.Level
	entryCopy.Message = entry.Message

	select {
	case h.entries <- entryCopy:
	default:
		// Channel đầy, bỏ qua entry để không blocking caller
	}

	return nil
}

// processEntries xử lý các entries từ channel trong goroutine riêng
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("AsyncHook panic recovered: %v\n", r)
		}
	}()

	for entry := range h.entries {
		h.writeEntry(entry)
	}
}

// writeEntry serialize entry và ghi ra tất cả writers
func (h *AsyncHook) writeEntry(entry *logrus.Entry) {
	if entry.Logger == nil {
		return
	}

	serialized, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		fmt.Printf("Failed to format log entry: %v\n", err)
		return
	}

	for _, w := range h.writers {
		if _, err := w.Write(serialized); err != nil {
			fmt.Printf("Failed to write log entry: %v\n", err)
		}
	}
}

// Close đóng hook, chờ xử lý hết các entries còn lại trong channel
func (h *AsyncHook) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
}
