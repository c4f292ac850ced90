package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"monitor-hub/cmd/console/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:3000", "Backend base URL")
	token := flag.String("token", "", "Bearer token for the operator endpoints")
	username := flag.String("username", "", "Log in with this admin user instead of -token")
	password := flag.String("password", "", "Password for -username")
	interval := flag.Duration("interval", 5*time.Second, "Refresh interval (0 disables polling)")
	flag.Parse()

	client := ui.NewClient(*server, *token)
	if *username != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := client.Login(ctx, *username, *password)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "login: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(ui.NewRootModel(client, *interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}
