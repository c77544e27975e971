// Package client provides command line access to a running horror-bot: it
// pushes commands onto the Redis queue and prints the events games publish.
package client

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/horror-bot/internal/queue"
	"github.com/KirkDiggler/horror-bot/internal/redis"
)

var (
	// Connection flags
	redisAddr string
	queueKey  string
	timeout   time.Duration
	width     int
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Talk to a running horror-bot through Redis",
	Long:  `Client commands enqueue game commands and follow the events a game publishes, the same way a chat front-end does.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&redisAddr, "redis", "localhost:6379", "Redis address")
	ClientCmd.PersistentFlags().StringVar(&queueKey, "queue", queue.DefaultKey, "command queue key")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for a reply")
	ClientCmd.PersistentFlags().IntVar(&width, "width", 80, "wrap output at this many columns")

	ClientCmd.AddCommand(sendCmd)
	ClientCmd.AddCommand(tailCmd)
	ClientCmd.AddCommand(scenariosCmd)
}

// connect opens and pings a Redis client
func connect(ctx context.Context) (redis.Client, func(), error) {
	client, err := redis.Connect(ctx, redisAddr, nil)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return client, cleanup, nil
}
