package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/unitofwork"
	internalWS "github.com/rafasilcos/arcflowapp-sub007/internal/websocket"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/autosave"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService processes flush announcements off the write path: it copies
// the freshly committed answer store into Postgres and pushes the recomputed
// progress to websocket watchers.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	remote     kvstore.Store
	templates  ITemplateService
	hub        *internalWS.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	remote kvstore.Store,
	templates ITemplateService,
	hub *internalWS.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		remote:     remote,
		templates:  templates,
		hub:        hub,
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
	var payload autosave.FlushedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal flush message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: payload.BriefingId})
	if err != nil {
		log.Printf("[ERROR] Failed to load briefing %s: %v", payload.BriefingId, err)
		msg.Nack()
		return
	}
	if b == nil {
		log.Printf("[WARN] Flush for unknown briefing %s", payload.BriefingId)
		msg.Ack() // Briefing deleted meanwhile, nothing to do.
		return
	}

	// Read back what the flush just committed.
	raw, err := cs.remote.Get(ctx, kvstore.AnswersKey(payload.BriefingId))
	if err != nil {
		log.Printf("[ERROR] Failed to read answers for %s: %v", payload.BriefingId, err)
		msg.Nack()
		return
	}
	if raw == nil {
		msg.Ack()
		return
	}

	var answers entity.AnswerStore
	if err := json.Unmarshal(raw, &answers); err != nil {
		log.Printf("[ERROR] Corrupt answer store for %s: %v", payload.BriefingId, err)
		msg.Ack()
		return
	}

	if err := uow.AnswerRecordRepository().Upsert(ctx, payload.BriefingId, answers); err != nil {
		log.Printf("[ERROR] Failed to persist answers for %s: %v", payload.BriefingId, err)
		msg.Nack()
		return
	}

	tpl, err := cs.templates.ResolveForBriefing(ctx, b)
	if err != nil {
		log.Printf("[ERROR] Failed to resolve template for %s: %v", payload.BriefingId, err)
		msg.Ack() // Progress push is best effort; the durable write succeeded.
		return
	}

	if cs.hub != nil {
		completed := []string{}
		for _, sec := range tpl.Sections {
			if briefing.SectionVisible(sec, answers) && briefing.SectionComplete(sec, answers) {
				completed = append(completed, sec.ID)
			}
		}
		cs.hub.PushProgress(internalWS.ProgressEvent{
			BriefingId:      b.Id,
			Progresso:       briefing.Progress(tpl.Sections, answers),
			SecoesCompletas: completed,
			Status:          string(b.Status),
		})
	}

	msg.Ack()
}
