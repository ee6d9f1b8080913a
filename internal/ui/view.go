package ui

import "fmt"

// View 渲染当前界面
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenCharacter:
		body = m.viewCharacter()
	case screenLobby:
		body = m.viewLobby()
	case screenGame:
		body = m.viewGame()
	}

	if m.errMsg != "" {
		body += "\n" + ErrorStyle.Render(m.errMsg)
	}

	return DocStyle.Render(body)
}

func (m *Model) viewMenu() string {
	return TitleStyle("🎲 AI Dungeon Master") + "\n\n" +
		m.roomInput.View() + "\n" +
		m.maxInput.View() + "\n\n" +
		SubtleStyle.Render("Enter: buat/gabung room • Tab: pindah kolom • Ctrl+C: keluar")
}

func (m *Model) viewCharacter() string {
	body := TitleStyle("Buat Karakter") + "\n" +
		SubtleStyle.Render(fmt.Sprintf("Room %s", m.roomCode)) + "\n\n"
	for _, in := range m.charInputs {
		body += in.View() + "\n"
	}
	return body + "\n" + SubtleStyle.Render("Enter pada kolom terakhir untuk kirim")
}

func (m *Model) viewLobby() string {
	status := fmt.Sprintf("Pemain: %d/%d • Siap: %d", m.lobby.Current, m.lobby.Max, m.lobby.Ready)
	hint := "Enter: siap!"
	if m.ready {
		hint = ReadyStyle.Render("Kamu sudah siap, menunggu pemain lain...")
	}
	return TitleStyle("Ruang Tunggu") + "\n" +
		SubtleStyle.Render(fmt.Sprintf("Room %s", m.roomCode)) + "\n\n" +
		BoxStyle.Render(status) + "\n\n" + hint
}

func (m *Model) viewGame() string {
	return m.chatView.View() + "\n\n" + m.chatInput.View()
}
