package registry

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("greeting", "xin chào")
	if err != nil {
		t.Fatalf("Register trả về lỗi không mong muốn: %v", err)
	}
	if !isNew {
		t.Error("Register lần đầu phải trả về isNew = true")
	}

	value, exists := r.Get("greeting")
	if !exists {
		t.Fatal("Get không tìm thấy item vừa đăng ký")
	}
	if value != "xin chào" {
		t.Errorf("Get trả về giá trị sai: got %q, want %q", value, "xin chào")
	}

	// Đăng ký lại cùng key phải ghi đè và trả về isNew = false
	isNew, err = r.Register("greeting", "hello")
	if err != nil {
		t.Fatalf("Register lần hai trả về lỗi: %v", err)
	}
	if isNew {
		t.Error("Register ghi đè phải trả về isNew = false")
	}
	value, _ = r.Get("greeting")
	if value != "hello" {
		t.Errorf("Giá trị sau khi ghi đè sai: got %q, want %q", value, "hello")
	}
}

func TestRegistryRegisterEmptyName(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Register("", 1); err == nil {
		t.Error("Register với name rỗng phải trả về lỗi")
	}
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0

	creator := func() (int, error) {
		calls++
		return 42, nil
	}

	value, err := r.GetOrCreate("counter", creator)
	if err != nil {
		t.Fatalf("GetOrCreate trả về lỗi: %v", err)
	}
	if value != 42 {
		t.Errorf("GetOrCreate trả về giá trị sai: got %d, want 42", value)
	}

	// Lần hai phải trả về item cũ, không gọi lại creator
	value, err = r.GetOrCreate("counter", creator)
	if err != nil {
		t.Fatalf("GetOrCreate lần hai trả về lỗi: %v", err)
	}
	if value != 42 {
		t.Errorf("GetOrCreate lần hai trả về giá trị sai: got %d, want 42", value)
	}
	if calls != 1 {
		t.Errorf("Creator bị gọi %d lần, mong đợi 1 lần", calls)
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("session", "conn-1")

	cleaned := false
	deleted, err := r.Clear("session", func(s string) error {
		cleaned = true
		return nil
	})
	if err != nil {
		t.Fatalf("Clear trả về lỗi: %v", err)
	}
	if !deleted {
		t.Error("Clear phải trả về deleted = true cho item tồn tại")
	}
	if !cleaned {
		t.Error("Cleanup function phải được gọi trước khi xóa")
	}

	if _, exists := r.Get("session"); exists {
		t.Error("Item vẫn còn trong registry sau khi Clear")
	}

	// Clear item không tồn tại không phải là lỗi
	deleted, err = r.Clear("missing", nil)
	if err != nil {
		t.Fatalf("Clear item không tồn tại trả về lỗi: %v", err)
	}
	if deleted {
		t.Error("Clear item không tồn tại phải trả về deleted = false")
	}
}

func TestRegistryClearCleanupError(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("session", "conn-1")

	deleted, err := r.Clear("session", func(s string) error {
		return fmt.Errorf("không đóng được kết nối")
	})
	if err == nil {
		t.Error("Clear phải trả về lỗi khi cleanup thất bại")
	}
	if deleted {
		t.Error("Item không được xóa khi cleanup thất bại")
	}
	if _, exists := r.Get("session"); !exists {
		t.Error("Item phải còn trong registry khi cleanup thất bại")
	}
}

func TestRegistryItemsSnapshot(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("a", 1)
	r.Register("b", 2)

	snapshot := r.Items()
	if len(snapshot) != 2 {
		t.Fatalf("Snapshot có %d items, mong đợi 2", len(snapshot))
	}

	// Sửa snapshot không được ảnh hưởng registry
	delete(snapshot, "a")
	if _, exists := r.Get("a"); !exists {
		t.Error("Xóa trên snapshot không được ảnh hưởng registry")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Register(fmt.Sprintf("item-%d", n), n)
			r.Get(fmt.Sprintf("item-%d", n))
			r.Items()
		}(i)
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("Registry có %d items sau concurrent writes, mong đợi 50", r.Len())
	}
}
