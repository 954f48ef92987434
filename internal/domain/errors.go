package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	// ErrUnauthenticated indica 401 do backend: a sessão local já foi limpa
	// e a operação deve ser abortada pelo chamador.
	ErrUnauthenticated = errors.New("sessão inválida ou expirada")
	ErrNotFound        = errors.New("recurso não encontrado")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrForbidden       = errors.New("acesso negado")
	ErrConflict        = errors.New("conflito com o estado atual")
	// ErrUnavailable cobre falhas de rede/transporte e respostas não-2xx sem
	// classificação própria. Sem retry: o usuário repete a ação.
	ErrUnavailable = errors.New("backend indisponível")
	// ErrNotReady indica leitura do store antes do bootstrap terminar.
	ErrNotReady = errors.New("store ainda não carregado")
)
