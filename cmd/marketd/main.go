package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"bazaar/api"
	"bazaar/domain/assets"
	"bazaar/domain/market"
	"bazaar/infra/sequence"
	entrywal "bazaar/infra/wal/entry"
	exitwal "bazaar/infra/wal/exit"
	"bazaar/jobs/broadcaster"
	"bazaar/service"
)

var log = logging.Logger("marketd")

// loggedFunds is the outbound value rail of a single-node deployment:
// every send is final once logged.
type loggedFunds struct{}

func (loggedFunds) Send(to market.Address, amount *uint256.Int) error {
	log.Infow("value sent", "to", to, "amount", amount.Dec())
	return nil
}

func main() {
	logging.SetAllLoggers(logging.LevelInfo)

	app := &cli.App{
		Name:  "marketd",
		Usage: "fixed-price marketplace settlement node",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "address for the JSON-RPC server",
				Value: ":8723",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory for WALs and snapshots",
				Value: "./data",
			},
			&cli.StringFlag{
				Name:  "identity",
				Usage: "marketplace address sellers approve as operator",
				Value: "0x00000000000000000000000000000000000000ff",
			},
			&cli.StringSliceFlag{
				Name:  "kafka-broker",
				Usage: "Kafka broker to publish settlement events to (repeatable)",
			},
			&cli.StringFlag{
				Name:  "kafka-topic",
				Usage: "Kafka topic for settlement events",
				Value: "market-events",
			},
			&cli.DurationFlag{
				Name:  "snapshot-interval",
				Usage: "how often to snapshot state and truncate WALs",
				Value: 30 * time.Second,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("marketd exited: %v", err)
	}
}

func run(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	self, err := market.ParseAddress(cctx.String("identity"))
	if err != nil {
		return err
	}

	dataDir := cctx.String("data-dir")
	walDir := filepath.Join(dataDir, "wal")
	snapPath := filepath.Join(dataDir, "snapshot.bin")

	// ---------------- Entry WAL ----------------

	entryWAL, err := entrywal.Open(entrywal.Config{
		Dir:             walDir,
		SegmentSize:     2 * 1024 * 1024,
		SegmentDuration: time.Minute,
	})
	if err != nil {
		return err
	}
	defer entryWAL.Close()

	// ---------------- Exit WAL ----------------

	exitWAL, err := exitwal.Open(filepath.Join(dataDir, "outbox"))
	if err != nil {
		return err
	}
	defer exitWAL.Close()

	// ---------------- Restore ----------------

	listings := market.NewListingRegistry()
	ledger := market.NewValueLedger()
	seqGen := sequence.New(0)

	if err := service.Restore(snapPath, walDir, listings, ledger, seqGen); err != nil {
		return err
	}

	// ---------------- Service ----------------

	reg := assets.NewRegistry()
	svc := service.NewMarketService(
		self,
		listings,
		ledger,
		reg,
		loggedFunds{},
		seqGen,
		entryWAL,
		exitWAL,
	)

	// ---------------- Background Jobs ----------------

	svc.StartSnapshotJob(ctx, dataDir, cctx.Duration("snapshot-interval"))

	if brokers := cctx.StringSlice("kafka-broker"); len(brokers) > 0 {
		bc, err := broadcaster.New(exitWAL, brokers, cctx.String("kafka-topic"))
		if err != nil {
			return err
		}
		defer bc.Close()
		bc.Start(ctx)
	}

	// ---------------- RPC ----------------

	srv := &http.Server{
		Addr:    cctx.String("listen"),
		Handler: api.NewServer(api.NewHandler(svc, reg)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infow("marketd running", "listen", srv.Addr, "identity", self)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
