package builder

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const gcsScheme = "gs://"

// IsRemotePath は gs:// で始まるパスかどうかを判定します。
func IsRemotePath(p string) bool {
	return strings.HasPrefix(p, gcsScheme)
}

// RemoteStorage は GCS の InputReader / OutputWriter を初回利用時に生成します。
// gs:// を使わない実行では認証情報を要求しません。
type RemoteStorage struct {
	once    sync.Once
	factory remoteio.IOFactory
	reader  remoteio.InputReader
	writer remoteio.OutputWriter
	err    error
}

// NewRemoteStorage は未初期化の RemoteStorage を返します。
func NewRemoteStorage() *RemoteStorage {
	return &RemoteStorage{}
}

func (s *RemoteStorage) init(ctx context.Context) error {
	s.once.Do(func() {
		factory, err := gcsfactory.New(ctx)
		if err != nil {
			s.err = fmt.Errorf("failed to create GCS client factory: %w", err)
			return
		}
		s.factory = factory
		if s.reader, err = factory.InputReader(); err != nil {
			s.err = err
			return
		}
		s.writer, s.err = factory.OutputWriter()
	})
	return s.err
}

// Open は gs:// のオブジェクトを開きます。
func (s *RemoteStorage) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s.reader.Open(ctx, uri)
}

// Write は gs:// のオブジェクトへデータを書き込みます。
func (s *RemoteStorage) Write(ctx context.Context, uri string, r io.Reader, contentType string) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	return s.writer.Write(ctx, uri, r, contentType)
}

// Close は初期化済みの GCS クライアントを解放します。未使用なら何もしません。
func (s *RemoteStorage) Close() error {
	if s.factory == nil {
		return nil
	}
	return s.factory.Close()
}
