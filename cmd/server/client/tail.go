package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/horror-bot/internal/notify"
)

var tailGameID string

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the events of a game",
	Long:  `Print every event a game publishes until interrupted. Use --game lobby to watch replies to commands without a game.`,
	RunE:  runTail,
}

func init() {
	tailCmd.Flags().StringVar(&tailGameID, "game", notify.LobbyGameID, "game id to follow")
}

func runTail(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, cleanup, err := connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	sub, err := notify.Subscribe(ctx, client, tailGameID)
	if err != nil {
		return err
	}
	defer func() { _ = sub.Close() }()

	fmt.Println(metaStyle.Render(fmt.Sprintf("following %s, ctrl-c to stop", notify.Channel(tailGameID))))

	for {
		select {
		case <-ctx.Done():
			return nil
		case env, ok := <-sub.Events():
			if !ok {
				return nil
			}
			fmt.Println(renderEnvelope(env, width))
		}
	}
}
