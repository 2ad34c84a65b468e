package telegram

import (
	"context"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/log"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/metrics"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/utils"
)

// Handler recebe os eventos do fluxo de chat. Implementado pelo engine de
// conversa; a serialização por usuário acontece lá dentro.
type Handler interface {
	HandleMessage(ctx context.Context, msg *Message)
	HandleCallbackQuery(ctx context.Context, cb *CallbackQuery)
}

// Poller é o loop de long polling que alimenta o Handler com updates.
type Poller struct {
	client  Client
	handler Handler
}

func NewPoller(client Client, handler Handler) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
	}
}

// Run consome updates até o contexto ser cancelado. Falhas de polling são
// logadas e o loop tenta de novo após uma pausa curta.
func (p *Poller) Run(ctx context.Context) error {
	logrus.Info("Iniciando long polling de updates do Telegram")

	var offset int64

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Long polling encerrado")
			return ctx.Err()
		default:
		}

		updates, err := p.client.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logrus.WithError(err).Warn("Falha ao buscar updates, tentando novamente")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			p.dispatch(ctx, update)
		}
	}
}

// dispatch roteia um update para o handler em uma goroutine própria. Usuários
// diferentes são atendidos em paralelo; eventos do mesmo usuário são
// serializados pelo lock por usuário do engine.
func (p *Poller) dispatch(ctx context.Context, update Update) {
	eventID, err := utils.GenerateID()
	if err != nil {
		eventID = "unknown"
	}

	eventCtx := context.WithValue(ctx, log.CorrelationIDKey, eventID)

	switch {
	case update.Message != nil:
		metrics.EventsHandled.WithLabelValues("message").Inc()
		msg := update.Message
		go p.handleSafely(eventCtx, update.UpdateID, func() {
			p.handler.HandleMessage(eventCtx, msg)
		})

	case update.CallbackQuery != nil:
		metrics.EventsHandled.WithLabelValues("callback_query").Inc()
		cb := update.CallbackQuery
		go p.handleSafely(eventCtx, update.UpdateID, func() {
			p.handler.HandleCallbackQuery(eventCtx, cb)
		})

	default:
		logrus.WithField("update_id", update.UpdateID).Debug("Update sem conteúdo tratável, ignorado")
	}
}

// handleSafely executa o handler recuperando pânicos: um update defeituoso é
// logado com stack trace e descartado, nunca derruba o processo.
func (p *Poller) handleSafely(ctx context.Context, updateID int64, handle func()) {
	defer func() {
		if err := recover(); err != nil {
			stack := make([]byte, 4096)
			stackSize := runtime.Stack(stack, false)

			logger := log.ForContext(ctx).WithFields(log.Fields{
				"update_id":   updateID,
				"panic_error": err,
			})

			logger.Error("Pânico ao tratar update do Telegram")
			logger.WithField("stack_trace", string(stack[:stackSize])).Error("Stack trace do erro")
		}
	}()

	handle()
}
