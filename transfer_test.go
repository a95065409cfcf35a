package qbit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetTransferInfo(t *testing.T) {
	daemon := &fakeDaemon{}
	daemon.handler = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/transfer/info" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"dl_info_speed": 9681262,
			"dl_info_data": 922746880,
			"up_info_speed": 1024,
			"dht_nodes": 386,
			"connection_status": "connected"
		}`)
	}
	server := daemon.server(t)
	defer server.Close()

	client, err := New(server.URL, "admin", "password")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	info, err := client.GetTransferInfo(context.Background())
	if err != nil {
		t.Fatalf("GetTransferInfo failed: %v", err)
	}
	if info.DlInfoSpeed != 9681262 {
		t.Errorf("Unexpected download speed %d", info.DlInfoSpeed)
	}
	if info.ConnectionStatus != ConnectionStatusConnected {
		t.Errorf("Unexpected connection status %q", info.ConnectionStatus)
	}
}

func TestGetSpeedLimitsMode(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"1", true},
		{"1\n", true},
		{"0", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("body %q", tt.body), func(t *testing.T) {
			daemon := &fakeDaemon{}
			daemon.handler = func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}
			server := daemon.server(t)
			defer server.Close()

			client, err := New(server.URL, "admin", "password")
			if err != nil {
				t.Fatalf("Failed to create client: %v", err)
			}

			active, err := client.GetSpeedLimitsMode(context.Background())
			if err != nil {
				t.Fatalf("GetSpeedLimitsMode failed: %v", err)
			}
			if active != tt.want {
				t.Errorf("Expected %v for body %q", tt.want, tt.body)
			}
		})
	}
}

func TestGetDownloadLimit(t *testing.T) {
	daemon := &fakeDaemon{}
	daemon.handler = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "1048576")
	}
	server := daemon.server(t)
	defer server.Close()

	client, err := New(server.URL, "admin", "password")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	limit, err := client.GetDownloadLimit(context.Background())
	if err != nil {
		t.Fatalf("GetDownloadLimit failed: %v", err)
	}
	if limit != 1048576 {
		t.Errorf("Expected 1048576, got %d", limit)
	}
}

func TestGetLimitDecodeFailure(t *testing.T) {
	daemon := &fakeDaemon{}
	daemon.handler = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not a number</html>")
	}
	server := daemon.server(t)
	defer server.Close()

	client, err := New(server.URL, "admin", "password")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.GetUploadLimit(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected a DecodeError, got %v", err)
	}
	if string(decodeErr.Body) != "<html>not a number</html>" {
		t.Errorf("Expected the raw body to be kept, got %q", decodeErr.Body)
	}
}

func TestSetUploadLimit(t *testing.T) {
	daemon := &fakeDaemon{}
	daemon.handler = func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		if r.PostForm.Get("limit") != "524288" {
			t.Errorf("Expected limit=524288, got %q", r.PostForm.Get("limit"))
		}
	}
	server := daemon.server(t)
	defer server.Close()

	client, err := New(server.URL, "admin", "password")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if err := client.SetUploadLimit(context.Background(), 524288); err != nil {
		t.Fatalf("SetUploadLimit failed: %v", err)
	}
}
