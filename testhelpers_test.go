//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/borrowspace/service-sharing/internal/application"
	"github.com/borrowspace/service-sharing/internal/events"
	"github.com/borrowspace/service-sharing/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// sharingStack holds the wired-up application services.
type sharingStack struct {
	Users           *application.UserService
	Items           *application.ItemService
	Bookings        *application.BookingService
	Requests        *application.RequestService
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a
// connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_sharing",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_sharing sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.RequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicBookingEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupSharingStack wires up the full service stack against real
// infrastructure.
func setupSharingStack(t *testing.T, db *gorm.DB, brokers []string) *sharingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	producer := events.NewProducer(brokers, logger)
	publisher := events.NewBookingPublisher(producer, logger)

	userSvc := application.NewUserService(userRepo, logger)
	bookingSvc := application.NewBookingService(userRepo, itemRepo, bookingRepo, publisher, logger)
	itemSvc := application.NewItemService(userRepo, itemRepo, commentRepo, bookingSvc, logger)
	requestSvc := application.NewRequestService(userRepo, itemRepo, requestRepo, logger)

	return &sharingStack{
		Users:           userSvc,
		Items:           itemSvc,
		Bookings:        bookingSvc,
		Requests:        requestSvc,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// registerUser creates a user through the service layer.
func registerUser(t *testing.T, stack *sharingStack, name string) *application.UserDTO {
	t.Helper()
	dto, err := stack.Users.CreateUser(context.Background(), application.CreateUserRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8]),
	})
	require.NoError(t, err)
	return dto
}

// listItem creates an available item through the service layer.
func listItem(t *testing.T, stack *sharingStack, ownerID uuid.UUID, name string) *application.ItemDTO {
	t.Helper()
	available := true
	dto, err := stack.Items.CreateItem(context.Background(), application.CreateItemRequest{
		Name:        name,
		Description: name + " in good condition",
		Available:   &available,
	}, ownerID)
	require.NoError(t, err)
	return dto
}

// seedPastApprovedBooking inserts a finished APPROVED booking directly into
// the store, bypassing the temporal rules enforced at creation.
func seedPastApprovedBooking(t *testing.T, db *gorm.DB, itemID, bookerID uuid.UUID, now time.Time) uuid.UUID {
	t.Helper()
	return seedBookingAt(t, db, itemID, bookerID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), "APPROVED")
}

// seedBookingAt inserts a booking row directly, bypassing the service's
// window validation.
func seedBookingAt(t *testing.T, db *gorm.DB, itemID, bookerID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()
	model := repository.BookingModel{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   end,
		ItemID:    itemID,
		BookerID:  bookerID,
		Status:    status,
		CreatedAt: start.Add(-24 * time.Hour),
		UpdatedAt: start.Add(-24 * time.Hour),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the
// expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) events.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := events.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
