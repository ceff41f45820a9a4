package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/segmentio/kafka-go"
	"github.com/vmihailenco/msgpack/v5"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
)

const (
	MaterialEventsTopic = "material-events"
	NumPartitions       = 3
)

// TopicConfig содержит настройки для создания топика
type TopicConfig struct {
	NumPartitions     int
	ReplicationFactor int
}

type MaterialEventKafkaRepository struct {
	writer  *kafka.Writer
	brokers []string
	topic   string
}

// createTopicIfNotExists создает топик, если он не существует
func createTopicIfNotExists(ctx context.Context, brokers []string, topic string, config TopicConfig) error {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	partitions, err := conn.ReadPartitions(topic)
	switch {
	case err == nil && len(partitions) > 0:
		return nil
	case err != nil && !errors.Is(err, kafka.UnknownTopicOrPartition):
		return err
	}

	// Топик создаётся только через контроллер кластера
	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer func() { _ = controllerConn.Close() }()

	return controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     config.NumPartitions,
		ReplicationFactor: config.ReplicationFactor,
	})
}

// replicationFactor не может превышать число доступных брокеров
func replicationFactor(ctx context.Context, brokers []string, desired int) int {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		log.Warnf("не удалось получить метаданные kafka, фактор репликации %d: %v", min(len(brokers), desired), err)
		return min(len(brokers), desired)
	}
	defer func() { _ = conn.Close() }()

	metadata, err := conn.Brokers()
	if err != nil || len(metadata) == 0 {
		return min(len(brokers), desired)
	}
	return min(len(metadata), desired)
}

func NewMaterialEventKafkaRepository(ctx context.Context, brokers []string) (repo.MaterialEvent, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	topicConfig := TopicConfig{
		NumPartitions:     NumPartitions,
		ReplicationFactor: replicationFactor(ctx, brokers, 3),
	}
	if err := createTopicIfNotExists(ctx, brokers, MaterialEventsTopic, topicConfig); err != nil {
		return nil, fmt.Errorf("create topic %s: %w", MaterialEventsTopic, err)
	}

	return &MaterialEventKafkaRepository{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    MaterialEventsTopic,
			Balancer: &kafka.Hash{},
		},
		brokers: brokers,
		topic:   MaterialEventsTopic,
	}, nil
}

// PublishMaterialEvent пишет событие с ключом по ID материала: события одного материала упорядочены
func (r *MaterialEventKafkaRepository) PublishMaterialEvent(ctx context.Context, event *entity.MaterialEvent) error {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return err
	}
	return r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.MaterialID),
		Value: b,
	})
}

func (r *MaterialEventKafkaRepository) SubscribeMaterialEvents(ctx context.Context, groupID string) (<-chan *entity.MaterialEvent, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     r.brokers,
		Topic:       r.topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	ch := make(chan *entity.MaterialEvent)
	go func() {
		defer close(ch)
		defer func() { _ = reader.Close() }()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Errorf("ошибка чтения события материала: %v", err)
				}
				return
			}
			var event entity.MaterialEvent
			if err := msgpack.Unmarshal(m.Value, &event); err != nil {
				log.Warnf("пропущено некорректное событие материала (offset %d): %v", m.Offset, err)
				continue
			}
			select {
			case ch <- &event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (r *MaterialEventKafkaRepository) Close() error {
	return r.writer.Close()
}
