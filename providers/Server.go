package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	wsjsonrpc2 "github.com/sourcegraph/jsonrpc2/websocket"
	"go.uber.org/multierr"
)

type ReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (r *ReadWriteCloser) Read(b []byte) (int, error) {
	return r.reader.Read(b)
}

func (r *ReadWriteCloser) Write(b []byte) (int, error) {
	return r.writer.Write(b)
}

func (r *ReadWriteCloser) Close() error {
	return multierr.Append(r.reader.Close(), r.writer.Close())
}

// StartServer serves stdio, or WebSocket connections when webSocketPort is
// positive.
func StartServer(config Configuration, webSocketPort int) error {
	if webSocketPort > 0 {
		return RunWebSocket(fmt.Sprintf("127.0.0.1:%d", webSocketPort), config)
	}

	return RunStdio(config)
}

func RunStdio(config Configuration) error {
	stream := &ReadWriteCloser{
		reader: os.Stdin,
		writer: os.Stdout,
	}

	log.Infof("reading from stdin, writing to stdout")

	return Serve(context.Background(), jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}), config)
}

// Serve runs one session over stream until the client disconnects.
func Serve(ctx context.Context, stream jsonrpc2.ObjectStream, config Configuration) error {
	session, err := NewSession(config)

	if err != nil {
		return err
	}

	conn := session.Connect(ctx, stream)
	<-conn.DisconnectNotify()
	session.Close()

	return nil
}

func RunWebSocket(address string, config Configuration) error {
	mux := http.NewServeMux()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	var connectionCount atomic.Int64

	mux.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		connection, err := upgrader.Upgrade(writer, request, nil)

		if err != nil {
			log.Infof("error upgrading HTTP to WebSocket: %s", err.Error())
			return
		}

		defer connection.Close()

		id := connectionCount.Add(1)

		log.Infof("received incoming WebSocket connection #%d", id)

		err = Serve(context.Background(), wsjsonrpc2.NewObjectStream(connection), config)

		if err != nil {
			log.Errorf("WebSocket connection #%d: %s", id, err.Error())
		}

		log.Infof("WebSocket connection #%d closed", id)
	})

	log.Infof("listening for WebSocket connections on %s", address)

	return http.ListenAndServe(address, mux)
}
