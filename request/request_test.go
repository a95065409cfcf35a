package request

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// Testa a opção WithQuery
func TestWithQuery(t *testing.T) {
	// Servidor de teste para capturar a query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter") != "downloading" {
			t.Errorf("Esperado filter=downloading, mas recebeu '%s'", r.URL.Query().Get("filter"))
		}
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("Esperado limit=10, mas recebeu '%s'", r.URL.Query().Get("limit"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	query := url.Values{}
	query.Set("filter", "downloading")
	query.Set("limit", "10")

	// Envia a requisição com query string
	resp, err := Do(context.Background(), nil, http.MethodGet, server.URL, WithQuery(query))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa que a query é anexada a uma URL que já tem parâmetros
func TestWithQueryAppends(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("a") != "1" || r.URL.Query().Get("b") != "2" {
			t.Errorf("Esperado a=1 e b=2, mas recebeu '%s'", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	query := url.Values{}
	query.Set("b", "2")

	resp, err := Do(context.Background(), nil, http.MethodGet, server.URL+"?a=1", WithQuery(query))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithForm
func TestWithForm(t *testing.T) {
	// Servidor de teste para capturar o corpo do formulário
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Esperado form urlencoded, mas recebeu '%s'", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Erro ao analisar o formulário: %v", err)
		}
		if r.PostForm.Get("hashes") != "aaa|bbb" {
			t.Errorf("Esperado hashes 'aaa|bbb', mas recebeu '%s'", r.PostForm.Get("hashes"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	form := url.Values{}
	form.Set("hashes", "aaa|bbb")

	// Envia a requisição com formulário
	resp, err := Do(context.Background(), nil, http.MethodPost, server.URL, WithForm(form))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithFile (corpo multipart)
func TestWithFile(t *testing.T) {
	// Servidor de teste para capturar o corpo multipart
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Erro ao analisar o multipart: %v", err)
		}

		files := r.MultipartForm.File["torrents"]
		if len(files) != 1 {
			t.Fatalf("Esperado 1 arquivo, mas recebeu %d", len(files))
		}
		if files[0].Filename != "test.torrent" {
			t.Errorf("Esperado nome 'test.torrent', mas recebeu '%s'", files[0].Filename)
		}
		if ct := files[0].Header.Get("Content-Type"); ct != "application/x-bittorrent" {
			t.Errorf("Esperado content type 'application/x-bittorrent', mas recebeu '%s'", ct)
		}

		f, err := files[0].Open()
		if err != nil {
			t.Fatalf("Erro ao abrir o arquivo: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "conteudo" {
			t.Errorf("Esperado conteudo do arquivo, mas recebeu '%s'", data)
		}

		// Os campos do formulário viram partes de texto
		if got := r.MultipartForm.Value["category"]; len(got) != 1 || got[0] != "iso" {
			t.Errorf("Esperado category 'iso', mas recebeu %v", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	form := url.Values{}
	form.Set("category", "iso")

	// Envia a requisição com arquivo e formulário
	resp, err := Do(context.Background(), nil, http.MethodPost, server.URL,
		WithForm(form),
		WithFile("torrents", "test.torrent", "application/x-bittorrent", []byte("conteudo")),
	)
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithBody
func TestWithBody(t *testing.T) {
	expectedBody := `{"message": "hello"}`

	// Servidor de teste para capturar o corpo da requisição
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != expectedBody {
			t.Errorf("Esperado body '%s', mas recebeu '%s'", expectedBody, string(body))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Envia a requisição com corpo bruto
	resp, err := Do(context.Background(), nil, http.MethodPost, server.URL, WithBody(strings.NewReader(expectedBody)))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithHeader
func TestWithHeader(t *testing.T) {
	expectedKey := "X-Custom-Header"
	expectedValue := "test-value"

	// Servidor de teste para capturar cabeçalhos
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(expectedKey) != expectedValue {
			t.Errorf("Esperado header '%s' com valor '%s', mas recebeu '%s'", expectedKey, expectedValue, r.Header.Get(expectedKey))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Envia a requisição com um cabeçalho customizado
	resp, err := Do(context.Background(), nil, http.MethodPost, server.URL, WithHeader(expectedKey, expectedValue))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithHeaders (múltiplos cabeçalhos)
func TestWithHeaders(t *testing.T) {
	expectedHeaders := map[string]string{
		"X-Header-One": "value1",
		"X-Header-Two": "value2",
	}

	// Servidor de teste para capturar múltiplos cabeçalhos
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range expectedHeaders {
			if r.Header.Get(k) != v {
				t.Errorf("Esperado header '%s' com valor '%s', mas recebeu '%s'", k, v, r.Header.Get(k))
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Envia a requisição com múltiplos cabeçalhos
	resp, err := Do(context.Background(), nil, http.MethodPost, server.URL, WithHeaders(expectedHeaders))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithCookie
func TestWithCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("SID")
		if err != nil || cookie.Value != "abc123" {
			t.Errorf("Esperado cookie SID=abc123, mas recebeu '%s'", r.Header.Get("Cookie"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Envia a requisição com o cookie de sessão
	resp, err := Do(context.Background(), nil, http.MethodGet, server.URL, WithCookie("SID=abc123"))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa a opção WithBasicAuth
func TestWithBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Errorf("Esperado credenciais admin/secret, mas recebeu '%s'/'%s'", user, pass)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Envia a requisição com autenticação básica
	resp, err := Do(context.Background(), nil, http.MethodGet, server.URL, WithBasicAuth("admin", "secret"))
	if err != nil {
		t.Fatalf("Erro na requisição: %v", err)
	}
	resp.Body.Close()
}

// Testa o cancelamento via contexto
func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A requisição deve falhar imediatamente
	_, err := Do(ctx, nil, http.MethodGet, server.URL)
	if err == nil {
		t.Fatal("Esperado erro de contexto cancelado")
	}
}
