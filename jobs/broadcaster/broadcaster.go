package broadcaster

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/IBM/sarama"
	logging "github.com/ipfs/go-log/v2"

	exitwal "bazaar/infra/wal/exit"
)

var log = logging.Logger("broadcaster")

// Broadcaster drains the exit WAL into Kafka. Events stay in the WAL
// until the broker acknowledges them, so a crash between send and ack
// re-publishes at-least-once.
type Broadcaster struct {
	exitWAL  *exitwal.ExitWAL
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(
	exitWAL *exitwal.ExitWAL,
	brokers []string,
	topic string,
) (*Broadcaster, error) {

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		exitWAL:  exitWAL,
		producer: producer,
		topic:    topic,
		interval: 250 * time.Millisecond,
	}, nil
}

// ------------------------------------------------
// START LOOP
// ------------------------------------------------

func (b *Broadcaster) Start(ctx context.Context) {
	log.Infow("broadcaster started", "topic", b.topic)

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				b.flushOnce()
			}
		}
	}()
}

// ------------------------------------------------
// FLUSH LOGIC
// ------------------------------------------------

func (b *Broadcaster) flushOnce() {
	b.flushState(exitwal.StateNew)
	b.flushState(exitwal.StateFailed)
}

func (b *Broadcaster) flushState(state exitwal.State) {
	_ = b.exitWAL.ScanByState(state, func(rec exitwal.Record) error {

		// Mark SENT before the network call; an ack moves it to
		// ACKED, a broker error moves it to FAILED for the next pass.
		if err := b.exitWAL.MarkSent(rec.Seq); err != nil {
			return err
		}

		var key [8]byte
		binary.BigEndian.PutUint64(key[:], rec.Seq)

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.ByteEncoder(key[:]),
			Value: sarama.ByteEncoder(rec.Payload),
		}

		if _, _, err := b.producer.SendMessage(msg); err != nil {
			log.Warnw("publish failed", "seq", rec.Seq, "err", err)
			_ = b.exitWAL.MarkFailed(rec.Seq)
			return nil // retry on the next tick
		}

		return b.exitWAL.MarkAcked(rec.Seq)
	})
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
