package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/horror-bot/internal/errors"
	"github.com/KirkDiggler/horror-bot/internal/notify"
	"github.com/KirkDiggler/horror-bot/internal/queue"
)

var (
	sendGameID     string
	sendPlayerID   string
	sendName       string
	sendScenarioID string
	sendKind       string
	sendText       string
	sendNoWait     bool
)

var sendCmd = &cobra.Command{
	Use:   "send <type>",
	Short: "Enqueue a game command and print the reply",
	Long: fmt.Sprintf(`Enqueue a game command and wait for its reply event.

Types: %s`, strings.Join(commandTypeNames(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendGameID, "game", "", "game id")
	sendCmd.Flags().StringVar(&sendPlayerID, "player", "", "player id")
	sendCmd.Flags().StringVar(&sendName, "name", "", "player display name (join_game)")
	sendCmd.Flags().StringVar(&sendScenarioID, "scenario", "", "scenario id (create_game)")
	sendCmd.Flags().StringVar(&sendKind, "kind", "", "turn action: attack, flee or search (register_action)")
	sendCmd.Flags().StringVar(&sendText, "text", "", "free-form action text (act)")
	sendCmd.Flags().BoolVar(&sendNoWait, "no-wait", false, "return after enqueueing")
}

func commandTypeNames() []string {
	names := make([]string, len(queue.CommandTypes))
	for i, t := range queue.CommandTypes {
		names[i] = string(t)
	}
	return names
}

func runSend(_ *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, cleanup, err := connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	q, err := queue.NewRedisQueue(&queue.Config{Client: client, Key: queueKey})
	if err != nil {
		return err
	}

	cmd := &queue.Command{
		Type:       queue.CommandType(args[0]),
		GameID:     sendGameID,
		PlayerID:   sendPlayerID,
		Name:       sendName,
		ScenarioID: sendScenarioID,
		Kind:       sendKind,
		Text:       sendText,
	}

	if sendNoWait {
		queued, err := q.Enqueue(ctx, cmd)
		if err != nil {
			return err
		}
		fmt.Printf("queued %s\n", queued.RequestID)
		return nil
	}

	// Subscribe first so the reply cannot be missed
	replyTo := cmd.GameID
	if replyTo == "" {
		replyTo = notify.LobbyGameID
	}
	sub, err := notify.Subscribe(ctx, client, replyTo)
	if err != nil {
		return err
	}
	defer func() { _ = sub.Close() }()

	queued, err := q.Enqueue(ctx, cmd)
	if err != nil {
		return err
	}

	env, err := awaitReply(ctx, sub.Events(), queued.RequestID)
	if err != nil {
		return err
	}

	fmt.Print(renderEnvelope(env, width))
	if env.Type == notify.EventCommandFailed {
		return fmt.Errorf("command %s failed", queued.RequestID)
	}
	return nil
}

// awaitReply returns the first completed or failed event for requestID
func awaitReply(ctx context.Context, envs <-chan *notify.Envelope, requestID string) (*notify.Envelope, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, errors.DeadlineExceeded("no reply before timeout").WithMeta("request_id", requestID)
		case env, ok := <-envs:
			if !ok {
				return nil, errors.Unavailable("subscription closed")
			}
			if env.RequestID != requestID {
				continue
			}
			if env.Type == notify.EventCommandCompleted || env.Type == notify.EventCommandFailed {
				return env, nil
			}
		}
	}
}
