package request

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Estrutura que contém as configurações da requisição
type Options struct {
	Query     url.Values
	Form      url.Values
	Files     []File
	Body      io.Reader
	Headers   map[string]string
	Cookie    string
	BasicAuth *BasicAuth
}

// Arquivo enviado como parte de um corpo multipart
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Credenciais de autenticação HTTP básica (proxy reverso)
type BasicAuth struct {
	Username string
	Password string
}

// Tipo de função para aplicar opções à Options
type Option func(*Options)

// WithQuery define os parâmetros de query string
func WithQuery(query url.Values) Option {
	return func(o *Options) {
		o.Query = query
	}
}

// WithForm define um corpo application/x-www-form-urlencoded
func WithForm(form url.Values) Option {
	return func(o *Options) {
		o.Form = form
	}
}

// WithFile adiciona um arquivo à requisição; o corpo passa a ser multipart
// e os campos de Form viram partes de texto
func WithFile(field, name, contentType string, data []byte) Option {
	return func(o *Options) {
		o.Files = append(o.Files, File{
			Field:       field,
			Name:        name,
			ContentType: contentType,
			Data:        data,
		})
	}
}

// WithBody define um corpo bruto para a requisição
func WithBody(body io.Reader) Option {
	return func(o *Options) {
		o.Body = body
	}
}

// WithHeader adiciona um cabeçalho à requisição
func WithHeader(key, value string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// Adiciona múltiplos cabeçalhos de uma vez
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithCookie define o cabeçalho Cookie da sessão
func WithCookie(cookie string) Option {
	return func(o *Options) {
		o.Cookie = cookie
	}
}

// WithBasicAuth define as credenciais de autenticação básica
func WithBasicAuth(username, password string) Option {
	return func(o *Options) {
		o.BasicAuth = &BasicAuth{Username: username, Password: password}
	}
}

// Execute a HTTP request com opções personalizadas
func Do(ctx context.Context, client *http.Client, method, rawURL string, opts ...Option) (*http.Response, error) {
	options := &Options{}

	// Aplicar todas as opções passadas
	for _, opt := range opts {
		opt(options)
	}

	if client == nil {
		client = http.DefaultClient
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Montar o corpo conforme as opções: multipart > form > bruto
	body := options.Body
	contentType := ""
	switch {
	case len(options.Files) > 0:
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for key, values := range options.Form {
			for _, value := range values {
				if err := writer.WriteField(key, value); err != nil {
					return nil, err
				}
			}
		}
		for _, file := range options.Files {
			part, err := writer.CreatePart(file.header())
			if err != nil {
				return nil, err
			}
			if _, err := part.Write(file.Data); err != nil {
				return nil, err
			}
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}
		body = buf
		contentType = writer.FormDataContentType()
	case options.Form != nil:
		body = strings.NewReader(options.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	// Anexar a query string à URL
	if len(options.Query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + options.Query.Encode()
	}

	// Criar a requisição
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}

	// Adicionar cabeçalhos
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range options.Headers {
		req.Header.Set(k, v)
	}
	if options.Cookie != "" {
		req.Header.Set("Cookie", options.Cookie)
	}
	if options.BasicAuth != nil {
		req.SetBasicAuth(options.BasicAuth.Username, options.BasicAuth.Password)
	}

	// Executar a requisição
	return client.Do(req)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Monta os cabeçalhos MIME da parte do arquivo
func (f File) header() textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+quoteEscaper.Replace(f.Field)+`"; filename="`+quoteEscaper.Replace(f.Name)+`"`)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}
