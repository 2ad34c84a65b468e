package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/transport/telegram"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/usecases/authenticating"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/usecases/reporting"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/log"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/utils"
)

// Engine é a máquina de estados da conversa. Cada evento é atendido até o
// fim sob o lock do usuário; usuários diferentes são atendidos em paralelo.
// Falhas de renderização (apagar menu antigo, editar mensagem) nunca abortam
// uma transição: são logadas e engolidas.
type Engine struct {
	cfg        *config.Config
	auth       authenticating.Authenticator
	filterRepo repository.FilterRepository
	stats      adsterra.Integrator
	reporter   reporting.Reporter
	messenger  telegram.Messenger
	states     *userStates
	now        func() time.Time
}

func NewEngine(
	cfg *config.Config,
	auth authenticating.Authenticator,
	filterRepo repository.FilterRepository,
	stats adsterra.Integrator,
	reporter reporting.Reporter,
	messenger telegram.Messenger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		auth:       auth,
		filterRepo: filterRepo,
		stats:      stats,
		reporter:   reporter,
		messenger:  messenger,
		states:     newUserStates(),
		now:        time.Now,
	}
}

// HandleMessage atende mensagens de texto: comandos em qualquer estado e
// entrada livre conforme o estado pendente do usuário.
func (e *Engine) HandleMessage(ctx context.Context, msg *telegram.Message) {
	if msg.From == nil {
		return
	}

	userID := msg.From.ID
	lock := e.states.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	e.auth.TouchActivity(ctx, userID, e.now())

	text := strings.TrimSpace(msg.Text)

	switch text {
	case "/start":
		e.handleStart(ctx, msg)
	case "/logout":
		e.handleLogout(ctx, msg)
	case "/cancel":
		e.handleCancel(ctx, msg)
	default:
		switch e.states.current(userID) {
		case StateAwaitingCredentials:
			e.handleCredentials(ctx, msg, text)
		case StateAwaitingDateRange:
			e.handleDateRange(ctx, msg, text)
		default:
			log.ForContext(ctx).WithFields(log.Fields{
				"user_id": userID,
				"state":   e.states.current(userID).String(),
			}).Debug("Mensagem fora de fluxo, ignorada")
		}
	}
}

// HandleCallbackQuery atende botões inline. Exige sessão ativa; o payload é
// decodificado em um comando estruturado antes do despacho.
func (e *Engine) HandleCallbackQuery(ctx context.Context, cb *telegram.CallbackQuery) {
	userID := cb.From.ID
	lock := e.states.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id": userID,
		"data":    cb.Data,
	})

	// Ack imediato para o cliente parar o spinner do botão.
	if err := e.messenger.AnswerCallbackQuery(ctx, cb.ID, ""); err != nil {
		logger.WithError(err).Debug("Falha ao confirmar callback, seguindo")
	}

	session, err := e.auth.CurrentSession(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Falha ao consultar sessão")
		return
	}
	if session == nil {
		e.send(ctx, e.chatID(cb), loginPromptText)
		e.states.set(userID, StateAwaitingCredentials)
		return
	}

	e.auth.TouchActivity(ctx, userID, e.now())

	chatID := e.chatID(cb)
	cmd := domain.ParseCommand(cb.Data)

	switch cmd.Kind {
	case domain.CmdReportToday:
		today := e.now().Format(time.DateOnly)
		e.runReport(ctx, chatID, userID, today, today, cb.Message)

	case domain.CmdDateFilter:
		e.editOrSend(ctx, cb, "📅 Select date range:", dateFilterMarkup())

	case domain.CmdPreset:
		e.handlePreset(ctx, cb, cmd, chatID, userID)

	case domain.CmdDomainFilter:
		e.editOrSend(ctx, cb, "🌐 Select domain:", domainMarkup(e.cfg))

	case domain.CmdSelectDomain:
		e.handleSelectDomain(ctx, cb, cmd, chatID, userID)

	case domain.CmdPlacementFilter:
		e.handlePlacementFilter(ctx, cb, chatID, userID)

	case domain.CmdSelectPlacement:
		e.handleSelectPlacement(ctx, cb, cmd, chatID, userID)

	case domain.CmdToggleGroup:
		e.handleToggleGroup(ctx, cb, chatID, userID)

	case domain.CmdResetFilters:
		e.handleResetFilters(ctx, cb, chatID, userID)

	case domain.CmdBackToMenu:
		e.showMainMenu(ctx, chatID, userID, cb.Message)

	default:
		logger.Debug("Payload de botão desconhecido, ignorado")
	}
}

// handleStart atende /start: com sessão ativa mostra o menu direto; sem
// sessão, pede credenciais. A checagem de sessão é o único portão.
func (e *Engine) handleStart(ctx context.Context, msg *telegram.Message) {
	userID := msg.From.ID

	session, err := e.auth.CurrentSession(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Error("Falha ao consultar sessão no /start")
	}

	if session != nil {
		e.send(ctx, msg.Chat.ID, fmt.Sprintf("Welcome back, %s!", session.Username))
		e.showMainMenu(ctx, msg.Chat.ID, userID, nil)
		// Nenhum estado pendente fica retido: os botões validam a sessão, não
		// o estado em memória.
		e.states.set(userID, StateLoggedOut)
		return
	}

	e.send(ctx, msg.Chat.ID, loginPromptText)
	e.states.set(userID, StateAwaitingCredentials)
}

func (e *Engine) handleLogout(ctx context.Context, msg *telegram.Message) {
	userID := msg.From.ID

	if err := e.auth.Logout(ctx, userID); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Error("Falha ao encerrar sessão")
	}

	e.send(ctx, msg.Chat.ID, loggedOutText)
	e.states.set(userID, StateLoggedOut)
}

func (e *Engine) handleCancel(ctx context.Context, msg *telegram.Message) {
	e.send(ctx, msg.Chat.ID, cancelledText)
	e.states.set(msg.From.ID, StateLoggedOut)
}

// handleCredentials valida "username|password" e, em sucesso, abre a sessão
// e mostra o menu. Formato ruim e credencial ruim reorientam sem mudar de
// estado.
func (e *Engine) handleCredentials(ctx context.Context, msg *telegram.Message, text string) {
	userID := msg.From.ID

	session, err := e.auth.Login(ctx, userID, text)
	switch {
	case errors.Is(err, authenticating.ErrInvalidFormat):
		e.send(ctx, msg.Chat.ID, invalidFormatText)

	case errors.Is(err, authenticating.ErrInvalidCredentials):
		e.send(ctx, msg.Chat.ID, invalidCredentialsText)

	case err != nil:
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Error("Falha inesperada no login")
		e.send(ctx, msg.Chat.ID, invalidCredentialsText)

	default:
		e.send(ctx, msg.Chat.ID, fmt.Sprintf("✅ Login successful! Welcome, %s.", session.Username))
		e.showMainMenu(ctx, msg.Chat.ID, userID, nil)
		e.states.set(userID, StateMainMenu)
	}
}

// handleDateRange interpreta "YYYY-MM-DD to YYYY-MM-DD", persiste o período
// e roda o relatório. Entrada inválida reorienta e mantém o estado.
func (e *Engine) handleDateRange(ctx context.Context, msg *telegram.Message, text string) {
	userID := msg.From.ID

	start, end, err := utils.ParseDateRange(text)
	if err != nil {
		e.send(ctx, msg.Chat.ID, invalidDateRangeText)
		return
	}

	startStr := start.Format(time.DateOnly)
	endStr := end.Format(time.DateOnly)

	e.patchFilters(ctx, userID, domain.FilterPatch{
		StartDate: &startStr,
		EndDate:   &endStr,
	})

	e.send(ctx, msg.Chat.ID, fmt.Sprintf("✅ Date range set to %s to %s", startStr, endStr))
	e.states.set(userID, StateMainMenu)
	e.runReport(ctx, msg.Chat.ID, userID, startStr, endStr, nil)
}

// handlePreset resolve um preset de datas. "custom" apenas troca o estado e
// pede o intervalo em texto livre; os demais persistem e geram o relatório.
func (e *Engine) handlePreset(ctx context.Context, cb *telegram.CallbackQuery, cmd domain.Command, chatID, userID int64) {
	if cmd.Preset == PresetCustom {
		e.editOrSend(ctx, cb, dateRangePromptText, nil)
		e.states.set(userID, StateAwaitingDateRange)
		return
	}

	start, end := ResolvePreset(cmd.Preset, e.today())
	startStr := start.Format(time.DateOnly)
	endStr := end.Format(time.DateOnly)

	e.patchFilters(ctx, userID, domain.FilterPatch{
		StartDate: &startStr,
		EndDate:   &endStr,
	})

	e.runReport(ctx, chatID, userID, startStr, endStr, cb.Message)
}

// handleSelectDomain persiste o domínio escolhido. Trocar de domínio sempre
// limpa o placement, que é escopado ao domínio.
func (e *Engine) handleSelectDomain(ctx context.Context, cb *telegram.CallbackQuery, cmd domain.Command, chatID, userID int64) {
	patch := domain.FilterPatch{ClearPlacement: true}
	confirmation := "✅ Filter updated: All domains selected"

	if !cmd.All {
		domainID := cmd.DomainID
		patch.Domain = &domainID

		name, ok := e.cfg.Domains[domainID]
		if !ok {
			name = fmt.Sprintf("Domain %d", domainID)
		}
		confirmation = fmt.Sprintf("✅ Filter updated: %s selected", name)
	} else {
		patch.ClearDomain = true
	}

	e.patchFilters(ctx, userID, patch)
	e.editOrSend(ctx, cb, confirmation, nil)
	e.showMainMenu(ctx, chatID, userID, nil)
}

// handlePlacementFilter abre o menu de placements do domínio selecionado.
// Sem domínio, ou sem placements, apenas informa e não muda de estado.
func (e *Engine) handlePlacementFilter(ctx context.Context, cb *telegram.CallbackQuery, chatID, userID int64) {
	filters := e.currentFilters(ctx, userID)
	if filters.Domain == nil {
		e.send(ctx, chatID, selectDomainFirstText)
		return
	}

	placements := e.stats.GetPlacements(ctx, *filters.Domain)
	if len(placements) == 0 {
		e.send(ctx, chatID, noPlacementsText)
		return
	}

	e.editOrSend(ctx, cb, "🎯 Select placement:", placementMarkup(placements))
}

func (e *Engine) handleSelectPlacement(ctx context.Context, cb *telegram.CallbackQuery, cmd domain.Command, chatID, userID int64) {
	patch := domain.FilterPatch{}
	confirmation := "✅ Filter updated: All placements selected"

	if !cmd.All {
		placementID := cmd.PlacementID
		patch.Placement = &placementID
		confirmation = fmt.Sprintf("✅ Filter updated: Placement %d selected", placementID)
	} else {
		patch.ClearPlacement = true
	}

	e.patchFilters(ctx, userID, patch)
	e.editOrSend(ctx, cb, confirmation, nil)
	e.showMainMenu(ctx, chatID, userID, nil)
}

// handleToggleGroup alterna a dimensão de agrupamento e regera o relatório
// com o período já gravado nos filtros.
func (e *Engine) handleToggleGroup(ctx context.Context, cb *telegram.CallbackQuery, chatID, userID int64) {
	filters := e.currentFilters(ctx, userID)
	newGroup := filters.ToggledGroupBy()

	e.patchFilters(ctx, userID, domain.FilterPatch{GroupBy: &newGroup})
	e.editOrSend(ctx, cb, fmt.Sprintf("✅ Group by changed to %s", capitalize(newGroup)), nil)
	e.runReport(ctx, chatID, userID, "", "", nil)
}

func (e *Engine) handleResetFilters(ctx context.Context, cb *telegram.CallbackQuery, chatID, userID int64) {
	groupByDate := domain.GroupByDate

	e.patchFilters(ctx, userID, domain.FilterPatch{
		ClearDates:     true,
		ClearDomain:    true,
		ClearPlacement: true,
		GroupBy:        &groupByDate,
	})

	e.editOrSend(ctx, cb, "✅ All filters have been reset", nil)
	e.showMainMenu(ctx, chatID, userID, nil)
}

// runReport delega ao gerador de relatórios e, em sucesso, re-renderiza o
// menu principal. Em falha de busca o usuário já foi avisado; não há
// transição nem renderização adicional.
func (e *Engine) runReport(ctx context.Context, chatID, userID int64, startDate, endDate string, prior *telegram.Message) {
	if err := e.reporter.Generate(ctx, chatID, userID, startDate, endDate); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Warn("Geração de relatório abortada")
		return
	}

	e.showMainMenu(ctx, chatID, userID, prior)
}

// showMainMenu renderiza o menu principal com os filtros atuais. Quando veio
// de um botão, o menu antigo é apagado antes; falha ao apagar não impede o
// envio do menu novo.
func (e *Engine) showMainMenu(ctx context.Context, chatID, userID int64, prior *telegram.Message) {
	filters := e.currentFilters(ctx, userID)

	if prior != nil {
		if err := e.messenger.DeleteMessage(ctx, chatID, prior.MessageID); err != nil {
			log.ForContext(ctx).WithError(err).WithField("user_id", userID).
				Warn("Falha ao apagar menu anterior, seguindo com o novo")
		}
	}

	if _, err := e.messenger.SendMessage(ctx, chatID, mainMenuText, mainMenuMarkup(filters, e.cfg)); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Error("Falha ao enviar menu principal")
	}
}

// currentFilters lê os filtros gravados, caindo nos padrões em erro ou
// ausência.
func (e *Engine) currentFilters(ctx context.Context, userID int64) *domain.FilterSet {
	filters, err := e.filterRepo.Get(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Warn("Falha ao ler filtros, usando padrões")
	}
	if filters == nil {
		filters = domain.NewFilterSet(userID)
	}

	return filters
}

// patchFilters aplica a atualização parcial, logando e seguindo em caso de
// erro para não travar a conversa.
func (e *Engine) patchFilters(ctx context.Context, userID int64, patch domain.FilterPatch) {
	if _, err := e.filterRepo.Patch(ctx, userID, patch); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).
			Error("Falha ao gravar filtros")
	}
}

func (e *Engine) send(ctx context.Context, chatID int64, text string) {
	if _, err := e.messenger.SendMessage(ctx, chatID, text, nil); err != nil {
		log.ForContext(ctx).WithError(err).WithField("chat_id", chatID).
			Error("Falha ao enviar mensagem")
	}
}

// editOrSend edita a mensagem do botão, caindo para envio quando a edição
// não é possível.
func (e *Engine) editOrSend(ctx context.Context, cb *telegram.CallbackQuery, text string, markup *telegram.InlineKeyboardMarkup) {
	if cb.Message != nil {
		err := e.messenger.EditMessageText(ctx, cb.Message.Chat.ID, cb.Message.MessageID, text, markup)
		if err == nil {
			return
		}

		log.ForContext(ctx).WithError(err).Warn("Falha ao editar mensagem, enviando nova")
	}

	if _, err := e.messenger.SendMessage(ctx, e.chatID(cb), text, markup); err != nil {
		log.ForContext(ctx).WithError(err).Error("Falha ao enviar mensagem de menu")
	}
}

func (e *Engine) chatID(cb *telegram.CallbackQuery) int64 {
	if cb.Message != nil {
		return cb.Message.Chat.ID
	}
	return cb.From.ID
}

func (e *Engine) today() time.Time {
	return e.now()
}
