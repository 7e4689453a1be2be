package main

import (
	"clementus360/taskai/api"
	"clementus360/taskai/config"
	"clementus360/taskai/gateway"
	"clementus360/taskai/session"
	"clementus360/taskai/tui"
	"clementus360/taskai/viewmodel"
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {

	config.LoadEnv()
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskai: %v\n", err)
		os.Exit(1)
	}
	config.InitLogger(settings.LogLevel, settings.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := session.NewFileStore(settings.CredentialPath)
	nav := tui.NewNavigator()
	monitor := session.NewMonitor(store, nav.ToLogin)

	client := api.New(settings.APIURL, monitor, api.WithTimeout(settings.HTTPTimeout))

	deps := tui.Deps{
		Monitor:     monitor,
		Auth:        viewmodel.NewAuthForm(gateway.NewAuth(client), store),
		Tasks:       viewmodel.NewTaskCollection(gateway.NewTasks(client)),
		Chat:        viewmodel.NewChatView(gateway.NewChat(client)),
		Suggestions: config.ChatSuggestions,
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if settings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.New(ctx, deps), opts...)
	nav.Attach(p)

	config.Logger.Infof("TaskAI client starting against %s", settings.APIURL)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		config.Logger.Error("UI stopped with error:", err)
		fmt.Fprintf(os.Stderr, "taskai: %v\n", err)
		os.Exit(1)
	}
}
