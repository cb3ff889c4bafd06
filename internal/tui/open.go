package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
)

const openTimeout = 5 * time.Second

// URLOpener opens links in the user's browser.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

type urlOpenedMsg struct {
	url string
	err error
}

func openURL(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return urlOpenedMsg{url: url, err: errNoOpener}
		}
		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		defer cancel()

		return urlOpenedMsg{url: url, err: opener.Open(ctx, url)}
	}
}
