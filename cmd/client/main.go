package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/ai-dungeon-master/internal/logger"
	"github.com/palemoky/ai-dungeon-master/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:3000", "服务器地址")
	flag.Parse()

	// TUI 占用终端，日志写入文件
	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)

	model := ui.NewModel(serverURL)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
