package service

import (
	"context"
	"encoding/json"
	"log"

	"career-discovery-be/internal/dto"
	"career-discovery-be/internal/repository/specification"
	"career-discovery-be/internal/repository/unitofwork"
	"career-discovery-be/pkg/events"

	pktNats "career-discovery-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process report topic and fans each stored
// report out to the NATS bus for downstream systems.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishReportGeneratedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing report event for SessionId: %s", payload.SessionId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.CareerReportRepository().FindOne(ctx, specification.BySessionID{SessionID: payload.SessionId}, specification.ByArchived{Archived: false})
	if err != nil {
		log.Printf("[ERROR] Failed to get report for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if report == nil {
		log.Printf("[ERROR] Report not found for session: %s", payload.SessionId)
		msg.Ack() // Session reset before we got here? Ack.
		return
	}

	if cs.eventPublisher != nil {
		evt := events.ReportGenerated{
			SessionID:   report.SessionId.String(),
			StudentName: report.Snapshot.Name,
			PathCount:   len(report.RecommendedPaths),
			GeneratedAt: report.GeneratedAt,
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[ERROR] Failed to publish report event for session %s: %v", payload.SessionId, err)
			msg.Nack()
			return
		}
	}

	log.Printf("[SUCCESS] Report event dispatched for SessionId: %s", payload.SessionId)
	msg.Ack()
}
