package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Bao gồm cấu hình server, cơ sở dữ liệu, SMTP và chat
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server HTTP
	ChatAddress           string `env:"CHAT_ADDRESS" envDefault:":8081"`           // Địa chỉ server chat (websocket)
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật JWT
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"speaker_store"` // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	// Tài khoản quản trị cố định (trang quản lý)
	AdminUserID   string `env:"ADMIN_USER_ID" envDefault:"1"`        // Định danh admin dùng cho chat và JWT
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`   // Tên đăng nhập admin
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`   // Mật khẩu admin
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"` // Tên hiển thị admin
	// SMTP Configuration (gửi mail xác nhận đơn hàng)
	SMTPHost      string `env:"SMTP_HOST"`                                  // Host SMTP
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`                 // Port SMTP
	SMTPUsername  string `env:"SMTP_USERNAME"`                              // Tài khoản SMTP
	SMTPPassword  string `env:"SMTP_PASSWORD"`                              // Mật khẩu SMTP
	SMTPFromName  string `env:"SMTP_FROM_NAME" envDefault:"Speaker Store"`  // Tên người gửi
	SMTPFromEmail string `env:"SMTP_FROM_EMAIL"`                            // Địa chỉ người gửi
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
