// README: Outbound sink tests (Kafka via sarama mocks; Redis/Postgres when configured).
package ride

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"cabdispatch/internal/infra"
	"cabdispatch/internal/modules/location"
)

func sampleEvent() Event {
	names := map[location.NodeID]string{1: "AIRPORT", 2: "CENTRAL"}
	r := &Ride{
		ID:          7,
		CustomerID:  "c1",
		DriverID:    "d1",
		VehicleID:   3,
		Source:      1,
		Destination: 2,
		Path:        []location.NodeID{1, 2},
		Distance:    4,
		Fare:        40,
		Commission:  12,
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	return NewEvent(r, func(id location.NodeID) string { return names[id] })
}

func TestNewEventUsesNames(t *testing.T) {
	e := sampleEvent()
	if e.Source != "AIRPORT" || e.Destination != "CENTRAL" || len(e.Path) != 2 || e.Path[1] != "CENTRAL" {
		t.Fatalf("unexpected event %+v", e)
	}
}

// ---------------------------------------------------------------------------
// Kafka
// ---------------------------------------------------------------------------

func TestKafkaPublisherSendsEvent(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.RideID != 7 || e.DriverID != "d1" || e.Fare != 40 {
			return fmt.Errorf("unexpected payload %s", val)
		}
		return nil
	})

	pub := NewKafkaPublisher(producer, "dispatch.rides")
	if err := pub.Record(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestKafkaPublisherReportsFailure(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisher(producer, "dispatch.rides")
	if err := pub.Record(context.Background(), sampleEvent()); !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
	_ = pub.Close()
}

// ---------------------------------------------------------------------------
// Fan-out
// ---------------------------------------------------------------------------

type recordingSink struct {
	events []Event
	err    error
}

func (s *recordingSink) Record(_ context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func TestSinksFanOutAndJoinErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &recordingSink{}
	bad := &recordingSink{err: boom}

	err := Sinks{bad, ok}.Record(context.Background(), sampleEvent())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ok.events) != 1 || len(bad.events) != 1 {
		t.Fatal("every sink should see the event")
	}
	if err := (Sinks{}).Record(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("empty sinks: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Integration: Redis and Postgres (skipped unless configured)
// ---------------------------------------------------------------------------

func TestRedisPublisherIntegration(t *testing.T) {
	addr := os.Getenv("DISPATCH_REDIS_ADDR")
	if addr == "" {
		t.Skip("DISPATCH_REDIS_ADDR not set; skipping Redis integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	const channel = "dispatch:rides:test"
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := NewRedisPublisher(client, channel).Record(ctx, sampleEvent()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var e Event
		if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if e.RideID != 7 {
			t.Fatalf("unexpected event %+v", e)
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestPGStoreIntegration(t *testing.T) {
	dsn := os.Getenv("DISPATCH_DB_DSN")
	if dsn == "" {
		t.Skip("DISPATCH_DB_DSN not set; skipping Postgres integration test")
	}
	ctx := context.Background()
	if err := infra.Migrate(dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(ctx, "TRUNCATE TABLE rides"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	first := NewPGStore(db)
	e := sampleEvent()
	if err := first.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Record(ctx, e); err == nil {
		t.Fatal("expected duplicate ride in one run to be rejected")
	}

	// A restarted process numbers rides from 1 again.
	second := NewPGStore(db)
	if second.RunID() == first.RunID() {
		t.Fatal("stores share a run id")
	}
	if err := second.Record(ctx, e); err != nil {
		t.Fatalf("Record after restart: %v", err)
	}

	var count int
	var path []string
	if err := db.QueryRow(ctx, "SELECT count(*) FROM rides WHERE ride_id = $1", int64(e.RideID)).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(ctx, "SELECT path FROM rides WHERE run_id = $1 AND ride_id = $2", second.RunID(), int64(e.RideID)).Scan(&path); err != nil {
		t.Fatal(err)
	}
	if count != 2 || len(path) != 2 || path[0] != "AIRPORT" {
		t.Fatalf("count = %d, path = %v", count, path)
	}
}
