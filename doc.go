/*
Package qbit is a typed client for the qBittorrent Web API (v2).

Highlights:
  - One method per API operation, all taking a context.Context
  - Session cookie management with a single automatic re-login and retry
  - Typed errors for daemon-reported failures, usable with errors.Is/As
  - Multipart .torrent uploads and magnet/URL adds through one call

Quick start:

	import (
	    "context"
	    "log"

	    "github.com/George-Miao/qbit"
	)

	func main() {
	    client, err := qbit.New("http://localhost:8080", "admin", "password")
	    if err != nil {
	        log.Fatal(err)
	    }
	    defer client.Logout(context.Background())

	    // List all torrents
	    torrents, err := client.GetTorrentList(context.Background(), nil)
	    if err != nil {
	        log.Fatal(err)
	    }
	    for _, t := range torrents {
	        log.Printf("%s %s %.0f%%", t.Hash, t.Name, t.Progress*100)
	    }
	}
*/
package qbit
