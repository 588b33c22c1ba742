package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"bazaar/domain/market"
	"bazaar/infra/kafka"
)

var log = logging.Logger("indexer")

func main() {
	logging.SetAllLoggers(logging.LevelInfo)

	app := &cli.App{
		Name:  "market-indexer",
		Usage: "consume settlement events from Kafka",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "kafka-broker",
				Usage:    "Kafka broker to consume from (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "kafka-topic",
				Usage: "topic carrying settlement events",
				Value: "market-events",
			},
			&cli.StringFlag{
				Name:  "group",
				Usage: "consumer group id",
				Value: "market-indexer",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("indexer exited: %v", err)
	}
}

func run(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := kafka.NewConsumer(
		cctx.StringSlice("kafka-broker"),
		cctx.String("group"),
		cctx.String("kafka-topic"),
	)
	defer c.Close()

	counts := map[string]uint64{}

	for {
		msg, err := c.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Infow("indexer stopping", "counts", counts)
				return nil
			}
			return err
		}

		var env market.Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			log.Warnw("undecodable event", "offset", msg.Offset, "err", err)
			continue
		}

		counts[env.Type]++
		log.Infow("event",
			"type", env.Type, "seq", env.Seq, "id", env.ID,
			"offset", msg.Offset, "seen", counts[env.Type])
	}
}
