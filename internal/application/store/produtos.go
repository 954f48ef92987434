package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// CreateProduto cria um item do catálogo e recarrega a coleção.
func (s *Store) CreateProduto(ctx context.Context, produto *entity.Produto) error {
	if err := s.requerModulo(entity.ModuloProdutos); err != nil {
		return err
	}
	if produto.Nome == "" {
		return fmt.Errorf("store: nome do produto é obrigatório: %w", domain.ErrInvalidInput)
	}
	if produto.ValorTotal.IsNegative() {
		return fmt.Errorf("store: valor negativo: %w", domain.ErrInvalidInput)
	}
	if produto.MaxParcelas < 1 {
		produto.MaxParcelas = 1
	}
	s.mu.Lock()
	produto.EmpresaID = s.usuario.EmpresaID
	s.mu.Unlock()

	if _, err := s.repos.Produtos.Create(ctx, produto); err != nil {
		return err
	}
	return s.refetchProdutos(ctx)
}

// UpdateProduto atualiza o catálogo (patch otimista). Snapshots já tirados em
// negociações não são afetados.
func (s *Store) UpdateProduto(ctx context.Context, produto *entity.Produto) error {
	if err := s.requerModulo(entity.ModuloProdutos); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexProduto(s.produtos, produto.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: produto %s: %w", produto.ID, domain.ErrNotFound)
	}
	anterior := s.produtos[i]
	novo := *produto
	novo.EmpresaID = anterior.EmpresaID
	s.produtos[i] = &novo
	s.mu.Unlock()

	if err := s.repos.Produtos.Update(ctx, &novo); err != nil {
		s.mu.Lock()
		if j := indexProduto(s.produtos, produto.ID); j >= 0 {
			s.produtos[j] = anterior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteProduto remove do catálogo (otimista com rollback).
func (s *Store) DeleteProduto(ctx context.Context, id string) error {
	if err := s.requerModulo(entity.ModuloProdutos); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexProduto(s.produtos, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: produto %s: %w", id, domain.ErrNotFound)
	}
	anteriores := s.produtos
	s.produtos = append(append([]*entity.Produto(nil), s.produtos[:i]...), s.produtos[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Produtos.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.produtos = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) refetchProdutos(ctx context.Context) error {
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	s.mu.Unlock()

	produtos, err := s.repos.Produtos.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.produtos = produtos
	s.mu.Unlock()
	return nil
}

func indexProduto(produtos []*entity.Produto, id string) int {
	for i, p := range produtos {
		if p.ID == id {
			return i
		}
	}
	return -1
}
