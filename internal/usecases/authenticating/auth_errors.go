package authenticating

import "errors"

// Tipos de erros de autenticação do bot
var (
	// ErrInvalidFormat indica credenciais fora do formato "username|password".
	// Recuperável: o usuário é reorientado e permanece aguardando credenciais.
	ErrInvalidFormat = errors.New("formato de credenciais inválido")

	// ErrInvalidCredentials indica usuário ou senha fora da lista permitida.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)

// IsInputError verifica se o erro é recuperável pedindo nova entrada ao usuário.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrInvalidCredentials)
}
