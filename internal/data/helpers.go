package data

import (
	"context"
	"time"
)

const queryTimeout = 3 * time.Second

func getContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}
