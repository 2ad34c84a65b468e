package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	adsterramocks "github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra/mocks"
	repositorymocks "github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository/mocks"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/transport/telegram"
	telegrammocks "github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/transport/telegram/mocks"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/usecases/authenticating"
	reportingmocks "github.com/tonxmedia/adsterra-dashboard-bot/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

const (
	testUserID = int64(100)
	testChatID = int64(555)
)

type engineMocks struct {
	sessionRepo *repositorymocks.MockSessionRepository
	filterRepo  *repositorymocks.MockFilterRepository
	stats       *adsterramocks.MockIntegrator
	reporter    *reportingmocks.MockReporter
	messenger   *telegrammocks.MockMessenger
}

func newTestEngine(t *testing.T) (*Engine, *engineMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &engineMocks{
		sessionRepo: repositorymocks.NewMockSessionRepository(ctrl),
		filterRepo:  repositorymocks.NewMockFilterRepository(ctrl),
		stats:       adsterramocks.NewMockIntegrator(ctrl),
		reporter:    reportingmocks.NewMockReporter(ctrl),
		messenger:   telegrammocks.NewMockMessenger(ctrl),
	}

	cfg := &config.Config{
		AllowedUsers: map[string]string{"tonxmedia": "Sukses2026"},
		Domains: map[int64]string{
			1597430: "DIRECTLINK (1597430)",
			4638075: "asupankitasemua.xyz (4638075)",
		},
	}

	engine := NewEngine(
		cfg,
		authenticating.NewService(m.sessionRepo, cfg),
		m.filterRepo,
		m.stats,
		m.reporter,
		m.messenger,
	)
	engine.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	// Toda mensagem e callback registram atividade; irrelevante para os casos.
	m.sessionRepo.EXPECT().Touch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return engine, m
}

func textMessage(text string) *telegram.Message {
	return &telegram.Message{
		MessageID: 10,
		From:      &telegram.User{ID: testUserID, Username: "tonxmedia"},
		Chat:      telegram.Chat{ID: testChatID},
		Text:      text,
	}
}

func callback(data string) *telegram.CallbackQuery {
	return &telegram.CallbackQuery{
		ID:   "cb1",
		From: telegram.User{ID: testUserID},
		Message: &telegram.Message{
			MessageID: 42,
			Chat:      telegram.Chat{ID: testChatID},
		},
		Data: data,
	}
}

func activeSession() *domain.Session {
	return &domain.Session{
		UserID:   testUserID,
		Username: "tonxmedia",
	}
}

func TestStartWithoutSessionPromptsCredentials(t *testing.T) {
	engine, m := newTestEngine(t)

	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, loginPromptText, gomock.Nil()).
		Return(&telegram.Message{}, nil)

	engine.HandleMessage(context.Background(), textMessage("/start"))

	assert.Equal(t, StateAwaitingCredentials, engine.states.current(testUserID))
}

func TestStartWithActiveSessionShowsMenuDirectly(t *testing.T) {
	engine, m := newTestEngine(t)

	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, "Welcome back, tonxmedia!", gomock.Nil()).
		Return(&telegram.Message{}, nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
		Return(&telegram.Message{}, nil)

	engine.HandleMessage(context.Background(), textMessage("/start"))

	// Nenhum estado pendente fica retido: os botões validam a sessão.
	assert.Equal(t, StateLoggedOut, engine.states.current(testUserID))
}

func TestCredentialInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		setup     func(m *engineMocks)
		wantState State
	}{
		{
			name:  "Credenciais válidas abrem sessão e mostram o menu",
			input: "tonxmedia|Sukses2026",
			setup: func(m *engineMocks) {
				m.sessionRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
				m.messenger.EXPECT().
					SendMessage(gomock.Any(), testChatID, "✅ Login successful! Welcome, tonxmedia.", gomock.Nil()).
					Return(&telegram.Message{}, nil)
				m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
				m.messenger.EXPECT().
					SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
					Return(&telegram.Message{}, nil)
			},
			wantState: StateMainMenu,
		},
		{
			name:  "Sem pipe reorienta sobre o formato e mantém o estado",
			input: "nopipehere",
			setup: func(m *engineMocks) {
				m.messenger.EXPECT().
					SendMessage(gomock.Any(), testChatID, invalidFormatText, gomock.Nil()).
					Return(&telegram.Message{}, nil)
			},
			wantState: StateAwaitingCredentials,
		},
		{
			name:  "Credencial errada reorienta e mantém o estado",
			input: "nouser|whatever",
			setup: func(m *engineMocks) {
				m.messenger.EXPECT().
					SendMessage(gomock.Any(), testChatID, invalidCredentialsText, gomock.Nil()).
					Return(&telegram.Message{}, nil)
			},
			wantState: StateAwaitingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, m := newTestEngine(t)
			engine.states.set(testUserID, StateAwaitingCredentials)
			tt.setup(m)

			engine.HandleMessage(context.Background(), textMessage(tt.input))

			assert.Equal(t, tt.wantState, engine.states.current(testUserID))
		})
	}
}

func TestDateRangeInput(t *testing.T) {
	t.Run("Intervalo válido persiste as datas e gera o relatório", func(t *testing.T) {
		engine, m := newTestEngine(t)
		engine.states.set(testUserID, StateAwaitingDateRange)

		m.filterRepo.EXPECT().
			Patch(gomock.Any(), testUserID, gomock.Any()).
			DoAndReturn(func(_ context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
				assert.Equal(t, "2024-03-01", *patch.StartDate)
				assert.Equal(t, "2024-03-07", *patch.EndDate)
				return domain.NewFilterSet(userID), nil
			})
		m.messenger.EXPECT().
			SendMessage(gomock.Any(), testChatID, "✅ Date range set to 2024-03-01 to 2024-03-07", gomock.Nil()).
			Return(&telegram.Message{}, nil)
		m.reporter.EXPECT().
			Generate(gomock.Any(), testChatID, testUserID, "2024-03-01", "2024-03-07").
			Return(nil)
		m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
		m.messenger.EXPECT().
			SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
			Return(&telegram.Message{}, nil)

		engine.HandleMessage(context.Background(), textMessage("2024-03-01 to 2024-03-07"))

		assert.Equal(t, StateMainMenu, engine.states.current(testUserID))
	})

	t.Run("Intervalo inválido reorienta e mantém o estado", func(t *testing.T) {
		engine, m := newTestEngine(t)
		engine.states.set(testUserID, StateAwaitingDateRange)

		m.messenger.EXPECT().
			SendMessage(gomock.Any(), testChatID, invalidDateRangeText, gomock.Nil()).
			Return(&telegram.Message{}, nil)

		engine.HandleMessage(context.Background(), textMessage("2024-03-07 to 2024-03-01"))

		assert.Equal(t, StateAwaitingDateRange, engine.states.current(testUserID))
	})
}

func TestLogoutClearsSessionAndState(t *testing.T) {
	engine, m := newTestEngine(t)
	engine.states.set(testUserID, StateMainMenu)

	m.sessionRepo.EXPECT().Delete(gomock.Any(), testUserID).Return(nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, loggedOutText, gomock.Nil()).
		Return(&telegram.Message{}, nil)

	engine.HandleMessage(context.Background(), textMessage("/logout"))

	assert.Equal(t, StateLoggedOut, engine.states.current(testUserID))
}

func TestCallbackWithoutSessionPromptsLogin(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, loginPromptText, gomock.Nil()).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.CallbackReportToday))

	assert.Equal(t, StateAwaitingCredentials, engine.states.current(testUserID))
}

func TestSelectDomainClearsPlacement(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().
		Patch(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
			assert.Equal(t, int64(1597430), *patch.Domain)
			assert.True(t, patch.ClearPlacement)
			assert.False(t, patch.ClearDomain)
			return domain.NewFilterSet(userID), nil
		})
	m.messenger.EXPECT().
		EditMessageText(gomock.Any(), testChatID, 42, "✅ Filter updated: DIRECTLINK (1597430) selected", gomock.Nil()).
		Return(nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.DomainCallback(1597430)))
}

func TestSelectAllDomainsAlsoClearsPlacement(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().
		Patch(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
			assert.True(t, patch.ClearDomain)
			assert.True(t, patch.ClearPlacement)
			assert.Nil(t, patch.Domain)
			return domain.NewFilterSet(userID), nil
		})
	m.messenger.EXPECT().
		EditMessageText(gomock.Any(), testChatID, 42, "✅ Filter updated: All domains selected", gomock.Nil()).
		Return(nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.DomainAllCallback()))
}

func TestPresetPersistsDatesAndRunsReport(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().
		Patch(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
			assert.Equal(t, "2024-03-09", *patch.StartDate)
			assert.Equal(t, "2024-03-15", *patch.EndDate)
			return domain.NewFilterSet(userID), nil
		})
	m.reporter.EXPECT().
		Generate(gomock.Any(), testChatID, testUserID, "2024-03-09", "2024-03-15").
		Return(nil)
	m.messenger.EXPECT().DeleteMessage(gomock.Any(), testChatID, 42).Return(nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.PresetCallback(PresetLast7)))
}

func TestCustomPresetAsksForDateRange(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.messenger.EXPECT().
		EditMessageText(gomock.Any(), testChatID, 42, dateRangePromptText, gomock.Nil()).
		Return(nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.PresetCallback(PresetCustom)))

	assert.Equal(t, StateAwaitingDateRange, engine.states.current(testUserID))
}

func TestPlacementFilterRequiresDomain(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, selectDomainFirstText, gomock.Nil()).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.CallbackPlacementFilter))
}

func TestPlacementFilterWithoutPlacementsInforms(t *testing.T) {
	engine, m := newTestEngine(t)

	domainID := int64(1597430)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().
		Get(gomock.Any(), testUserID).
		Return(&domain.FilterSet{UserID: testUserID, Domain: &domainID, GroupBy: domain.GroupByDate}, nil)
	m.stats.EXPECT().GetPlacements(gomock.Any(), domainID).Return(nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, noPlacementsText, gomock.Nil()).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.CallbackPlacementFilter))
}

func TestToggleGroupRegeneratesReport(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.filterRepo.EXPECT().
		Patch(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
			assert.Equal(t, domain.GroupByCountry, *patch.GroupBy)
			return domain.NewFilterSet(userID), nil
		})
	m.messenger.EXPECT().
		EditMessageText(gomock.Any(), testChatID, 42, "✅ Group by changed to Country", gomock.Nil()).
		Return(nil)
	m.reporter.EXPECT().
		Generate(gomock.Any(), testChatID, testUserID, "", "").
		Return(nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.CallbackToggleGroup))
}

func TestResetFiltersClearsEverything(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.filterRepo.EXPECT().
		Patch(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
			assert.True(t, patch.ClearDates)
			assert.True(t, patch.ClearDomain)
			assert.True(t, patch.ClearPlacement)
			assert.Equal(t, domain.GroupByDate, *patch.GroupBy)
			return domain.NewFilterSet(userID), nil
		})
	m.messenger.EXPECT().
		EditMessageText(gomock.Any(), testChatID, 42, "✅ All filters have been reset", gomock.Nil()).
		Return(nil)
	m.filterRepo.EXPECT().Get(gomock.Any(), testUserID).Return(nil, nil)
	m.messenger.EXPECT().
		SendMessage(gomock.Any(), testChatID, mainMenuText, gomock.Not(gomock.Nil())).
		Return(&telegram.Message{}, nil)

	engine.HandleCallbackQuery(context.Background(), callback(domain.CallbackResetFilters))
}

func TestReportFailureDoesNotRenderMenu(t *testing.T) {
	engine, m := newTestEngine(t)

	m.messenger.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb1", "").Return(nil)
	m.sessionRepo.EXPECT().Get(gomock.Any(), testUserID).Return(activeSession(), nil)
	m.reporter.EXPECT().
		Generate(gomock.Any(), testChatID, testUserID, "2024-03-15", "2024-03-15").
		Return(assert.AnError)

	// Sem DeleteMessage nem SendMessage de menu: o relatório falhou.
	engine.HandleCallbackQuery(context.Background(), callback(domain.CallbackReportToday))
}

func TestMessagesOutOfFlowAreIgnored(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.HandleMessage(context.Background(), textMessage("hello there"))

	assert.Equal(t, StateLoggedOut, engine.states.current(testUserID))
}
