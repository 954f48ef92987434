// crmdesk é a interface de linha de comando do CRM: autentica contra o
// backend, sincroniza as coleções do tenant e executa exportação,
// importação e relatórios sobre o estado local.
//
// Uso:
//
//	crmdesk login -email joao@acme.com -senha segredo
//	crmdesk logout
//	crmdesk sync
//	crmdesk leads export [-o leads.csv]
//	crmdesk leads import -f planilha.csv
//	crmdesk report funil -id <funilID> [-pdf relatorio.pdf]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vendaflow/crmdesk/internal/application/exporter"
	"github.com/vendaflow/crmdesk/internal/application/importer"
	"github.com/vendaflow/crmdesk/internal/application/report"
	"github.com/vendaflow/crmdesk/internal/application/store"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
	"github.com/vendaflow/crmdesk/internal/infrastructure/api"
	"github.com/vendaflow/crmdesk/internal/infrastructure/pdf"
	"github.com/vendaflow/crmdesk/internal/infrastructure/session"
	"github.com/vendaflow/crmdesk/pkg/config"
	"github.com/vendaflow/crmdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando")

	sess := session.NewStore(cfg.Session.FilePath)
	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, sess, log)

	st := store.New(store.Repos{
		Empresas:     api.NewEmpresaRepository(client),
		Usuarios:     api.NewUsuarioRepository(client),
		Leads:        api.NewLeadRepository(client),
		Funis:        api.NewFunilRepository(client),
		Etapas:       api.NewEtapaRepository(client),
		Negociacoes:  api.NewNegociacaoRepository(client),
		Produtos:     api.NewProdutoRepository(client),
		Eventos:      api.NewEventoRepository(client),
		Tarefas:      api.NewTarefaRepository(client),
		Notificacoes: api.NewNotificacaoRepository(client),
	}, sess, log)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if os.Args[1] != "login" && os.Args[1] != "logout" {
		avisarSessaoExpirada(sess, log)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "login":
		err = cmdLogin(ctx, st, os.Args[2:])
	case "logout":
		err = st.Logout()
	case "sync":
		err = cmdSync(ctx, st)
	case "leads":
		err = cmdLeads(ctx, st, os.Args[2:])
	case "report":
		err = cmdReport(ctx, st, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("comando", os.Args[1]).Msg("comando falhou")
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: crmdesk <login|logout|sync|leads|report> [opções]")
}

// avisarSessaoExpirada inspeciona a expiração do token persistido antes de
// gastar uma chamada de rede. A palavra final continua sendo do backend (401).
func avisarSessaoExpirada(sess *session.Store, log *logger.Logger) {
	token := sess.Token()
	if token == "" {
		return
	}
	claims, err := session.DecodeClaims(token)
	if err != nil {
		return
	}
	if claims.Expirada(time.Now()) {
		log.Warn().Time("expirou_em", claims.ExpiresAt.Time).Msg("sessão local expirada; um novo login será necessário")
	}
}

func cmdLogin(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email do usuário")
	senha := fs.String("senha", "", "senha do usuário")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *senha == "" {
		return fmt.Errorf("login: -email e -senha são obrigatórios")
	}
	if err := st.Login(ctx, *email, *senha); err != nil {
		return err
	}
	u := st.Usuario()
	fmt.Printf("autenticado como %s (%s)\n", u.Nome, u.Perfil)
	return nil
}

func cmdSync(ctx context.Context, st *store.Store) error {
	if err := st.Bootstrap(ctx); err != nil {
		return err
	}
	fmt.Printf("sincronizado: %d leads, %d funis, %d negociações, %d produtos\n",
		len(st.Leads()), len(st.Funis()), len(st.Negociacoes()), len(st.Produtos()))
	return nil
}

func cmdLeads(ctx context.Context, st *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("uso: crmdesk leads <export|import> [opções]")
	}
	switch args[0] {
	case "export":
		return cmdLeadsExport(ctx, st, args[1:])
	case "import":
		return cmdLeadsImport(ctx, st, args[1:])
	default:
		return fmt.Errorf("uso: crmdesk leads <export|import> [opções]")
	}
}

func cmdLeadsExport(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("leads export", flag.ExitOnError)
	saida := fs.String("o", "", "arquivo de saída (padrão: leads-AAAA-MM-DD.csv)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := st.Bootstrap(ctx); err != nil {
		return err
	}

	ativos := make([]*entity.Lead, 0)
	for _, l := range st.Leads() {
		if !l.Deletado {
			ativos = append(ativos, l)
		}
	}
	dados, err := exporter.LeadsCSV(ativos)
	if err != nil {
		return err
	}
	nome := *saida
	if nome == "" {
		nome = exporter.NomeArquivo("leads", time.Now())
	}
	if err := os.WriteFile(nome, dados, 0o644); err != nil {
		return fmt.Errorf("gravar %s: %w", nome, err)
	}
	fmt.Printf("%d leads exportados para %s\n", len(ativos), nome)
	return nil
}

func cmdLeadsImport(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("leads import", flag.ExitOnError)
	arquivo := fs.String("f", "", "arquivo CSV/TSV de entrada")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *arquivo == "" {
		return fmt.Errorf("leads import: -f é obrigatório")
	}
	texto, err := os.ReadFile(*arquivo)
	if err != nil {
		return fmt.Errorf("ler %s: %w", *arquivo, err)
	}
	parsed, err := importer.Parse(string(texto))
	if err != nil {
		return err
	}
	for _, aviso := range parsed.Avisos {
		fmt.Fprintln(os.Stderr, "aviso:", aviso)
	}
	for _, falha := range parsed.Falhas {
		fmt.Fprintf(os.Stderr, "linha %d ignorada: %s\n", falha.Linha, falha.Motivo)
	}

	if err := st.Bootstrap(ctx); err != nil {
		return err
	}
	leads := make([]*entity.Lead, 0, len(parsed.Registros))
	for _, r := range parsed.Registros {
		leads = append(leads, &entity.Lead{
			NomeCompleto: r.NomeCompleto,
			Email:        r.Email,
			Whatsapp:     r.Whatsapp,
			Campanha:     r.Campanha,
			TipoPessoa:   r.TipoPessoa,
			Avaliacao:    r.Avaliacao,
		})
	}
	resultado, err := st.CreateLeadsEmLote(ctx, leads)
	if err != nil {
		return err
	}
	for _, falha := range resultado.Falhas {
		fmt.Fprintf(os.Stderr, "registro %d rejeitado: %s\n", falha.Indice+1, falha.Motivo)
	}
	fmt.Printf("%d leads importados, %d falhas\n", resultado.Sucessos, len(resultado.Falhas)+len(parsed.Falhas))
	return nil
}

func cmdReport(ctx context.Context, st *store.Store, args []string) error {
	if len(args) < 1 || args[0] != "funil" {
		return fmt.Errorf("uso: crmdesk report funil -id <funilID> [-pdf arquivo.pdf]")
	}
	fs := flag.NewFlagSet("report funil", flag.ExitOnError)
	funilID := fs.String("id", "", "funil a resumir (padrão: o primeiro)")
	arquivoPDF := fs.String("pdf", "", "também gravar o relatório em PDF")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := st.Bootstrap(ctx); err != nil {
		return err
	}

	var funil *entity.Funil
	for _, f := range st.Funis() {
		if *funilID == "" || f.ID == *funilID {
			funil = f
			break
		}
	}
	if funil == nil {
		return fmt.Errorf("funil %q não encontrado", *funilID)
	}
	if err := st.SelectFunil(ctx, funil.ID); err != nil {
		return err
	}

	resumo := report.ResumirFunil(funil, st.Etapas(), st.Negociacoes(), st.NegociacaoProdutos())
	fmt.Printf("Funil %s\n", resumo.Nome)
	for _, etapa := range resumo.Etapas {
		fmt.Printf("  %-30s %4d  R$ %s\n", etapa.Nome, etapa.Quantidade, etapa.Valor.StringFixed(2))
	}
	fmt.Printf("abertas=%d ganhas=%d perdidas=%d valor_ganho=R$ %s conversão=%s%%\n",
		resumo.Abertas, resumo.Ganhas, resumo.Perdidas,
		resumo.ValorGanho.StringFixed(2), resumo.TaxaConversao.Shift(2).StringFixed(1))

	if *arquivoPDF != "" {
		empresa := empresaDoUsuario(st)
		dados, err := pdf.NewFunilReportGenerator().Generate(empresa, resumo, time.Now())
		if err != nil {
			return err
		}
		if err := os.WriteFile(*arquivoPDF, dados, 0o644); err != nil {
			return fmt.Errorf("gravar %s: %w", *arquivoPDF, err)
		}
		fmt.Printf("relatório gravado em %s\n", *arquivoPDF)
	}
	return nil
}

func empresaDoUsuario(st *store.Store) string {
	u := st.Usuario()
	for _, e := range st.Empresas() {
		if u != nil && e.ID == u.EmpresaID {
			return e.Nome
		}
	}
	return "CRM"
}
