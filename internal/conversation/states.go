package conversation

import "sync"

// State indica qual entrada a próxima mensagem do usuário deve satisfazer.
type State int

const (
	StateLoggedOut State = iota
	StateAwaitingCredentials
	StateMainMenu
	StateAwaitingDateRange
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAwaitingCredentials:
		return "awaiting_credentials"
	case StateMainMenu:
		return "main_menu"
	case StateAwaitingDateRange:
		return "awaiting_date_range"
	default:
		return "unknown"
	}
}

// userStates guarda o estado de conversa pendente de cada usuário e o lock
// que serializa o atendimento de eventos de um mesmo usuário. Usuários
// diferentes não se bloqueiam.
type userStates struct {
	mu     sync.Mutex
	states map[int64]State
	locks  map[int64]*sync.Mutex
}

func newUserStates() *userStates {
	return &userStates{
		states: make(map[int64]State),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// current retorna o estado pendente do usuário. Usuários nunca vistos (ou
// vistos antes de um restart) começam em LoggedOut; /start recoloca qualquer
// um no fluxo.
func (u *userStates) current(userID int64) State {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.states[userID]
}

func (u *userStates) set(userID int64, state State) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.states[userID] = state
}

// userLock retorna o mutex de serialização de eventos do usuário, criando-o
// na primeira vez.
func (u *userStates) userLock(userID int64) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	lock, ok := u.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[userID] = lock
	}

	return lock
}
