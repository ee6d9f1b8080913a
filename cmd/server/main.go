package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/narrator"
	"github.com/palemoky/ai-dungeon-master/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	// API 凭证缺失直接退出，不接受任何连接
	secrets, err := config.LoadSecrets()
	if err != nil {
		log.Fatalf("读取环境变量失败: %v", err)
	}
	if secrets.GroqAPIKey == "" {
		log.Fatal("❌ 缺少 GROQ_API_KEY 环境变量")
	}

	gen := narrator.NewGroqClient(cfg.Narrator, secrets.GroqAPIKey)

	// 创建服务器
	srv := server.NewServer(cfg, gen)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("正在关闭服务器...")
		srv.Shutdown()
		os.Exit(0)
	}()

	// 启动服务器
	log.Println("🎲 AI Dungeon Master 服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
