//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// ChunkSize is the size of the reads performed on the response body.
const ChunkSize = 10 * 1024

// maxErrorBody limits how much of an error response is kept for the
// RetrievalError message.
const maxErrorBody = 64 * 1024

// maxPrealloc is the largest Content-Length trusted to size the buffer.
const maxPrealloc = 256 << 20

// Downloader fetches a single URL into memory
type Downloader struct {
	URL           string
	Done          chan struct{}
	Resp          *http.Response
	out           bytes.Buffer
	completed     int64
	completedLock sync.Mutex
	size          int64
	err           error
	tracker       Tracker
	watchdog      *watchdog
	release       func()
}

// Close the download
func (d *Downloader) Close() error {
	err := d.Resp.Body.Close()
	if d.tracker != nil {
		d.tracker.Done()
	}
	d.watchdog.Stop()
	d.release()
	if err != nil {
		return fmt.Errorf("closing input stream: %s", err)
	}
	return nil
}

// Size return the size of the download (or -1 if the server doesn't provide it)
func (d *Downloader) Size() int64 {
	return d.size
}

// Bytes returns the data received so far. The slice is valid until the next
// call to Run.
func (d *Downloader) Bytes() []byte {
	return d.out.Bytes()
}

// RunAndPoll starts the downloader copy-loop and calls the poll function every
// interval time to update progress.
func (d *Downloader) RunAndPoll(poll func(current, size int64), interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	go d.Run()
	for {
		select {
		case <-t.C:
			poll(d.Completed(), d.Size())
		case <-d.Done:
			poll(d.Completed(), d.Size())
			return d.Error()
		}
	}
}

// Run starts the downloader and waits until it completes the download.
// This method can be run in a goroutine to perform an asynchronous download;
// it will close the Done channel when the download is completed or an error occurs.
func (d *Downloader) Run() error {
	defer close(d.Done)

	in := d.Resp.Body
	buff := make([]byte, ChunkSize)
	for {
		n, err := in.Read(buff)
		if n > 0 {
			d.watchdog.Kick()
			_, _ = d.out.Write(buff[:n])
			d.completedLock.Lock()
			d.completed += int64(n)
			current := d.completed
			d.completedLock.Unlock()
			if d.tracker != nil {
				d.tracker.Update(current)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if cause := d.watchdog.Err(); errors.Is(cause, os.ErrDeadlineExceeded) {
				err = fmt.Errorf("no data received for %s: %w", d.watchdog.timeout, cause)
			}
			d.setError(fmt.Errorf("reading %s: %w", d.URL, err))
			break
		}
	}
	if err := d.Close(); err != nil && d.Error() == nil {
		d.setError(err)
	}
	return d.Error()
}

func (d *Downloader) setError(err error) {
	d.completedLock.Lock()
	d.err = err
	d.completedLock.Unlock()
}

// Error returns the error during download or nil if no errors happened
func (d *Downloader) Error() error {
	d.completedLock.Lock()
	defer d.completedLock.Unlock()
	return d.err
}

// Completed returns the bytes read so far
func (d *Downloader) Completed() int64 {
	d.completedLock.Lock()
	res := d.completed
	d.completedLock.Unlock()
	return res
}

// Fetch downloads the specified url in memory using the default
// configuration and returns its content.
func Fetch(reqURL string) ([]byte, error) {
	return FetchWithConfig(reqURL, GetDefaultConfig())
}

// FetchWithConfig downloads the specified url in memory using the given
// configuration and returns its content.
func FetchWithConfig(reqURL string, config Config) ([]byte, error) {
	return FetchWithConfigAndContext(context.Background(), reqURL, config)
}

// FetchWithConfigAndContext downloads the specified url in memory and returns
// its content. A status code of 400 or above is returned as a *RetrievalError.
// The download is not retried.
func FetchWithConfigAndContext(ctx context.Context, reqURL string, config Config) ([]byte, error) {
	d, err := NewDownload(ctx, reqURL, config)
	if err != nil {
		return nil, err
	}
	if config.PollFunction != nil {
		err = d.RunAndPoll(config.PollFunction, config.pollInterval())
	} else {
		err = d.Run()
	}
	if err != nil {
		return nil, err
	}
	return d.Bytes(), nil
}

// NewDownload performs the GET request for the specified url and returns a
// Downloader ready to copy the response body in memory. The request carries
// a random browser User-Agent. An error status is reported immediately as a
// *RetrievalError together with the text sent by the server.
func NewDownload(ctx context.Context, reqURL string, config Config) (*Downloader, error) {
	client, release, err := config.httpClient()
	if err != nil {
		return nil, fmt.Errorf("setting up HTTP client: %w", err)
	}
	wd := newWatchdog(ctx, config.InactivityTimeout)
	fail := func(err error) (*Downloader, error) {
		wd.Stop()
		release()
		return nil, err
	}

	req, err := http.NewRequestWithContext(wd.ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fail(fmt.Errorf("setting up HTTP request: %w", err))
	}
	req.Header.Set("User-Agent", RandomUserAgent())
	for k, v := range config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		if cause := wd.Err(); errors.Is(cause, os.ErrDeadlineExceeded) {
			err = fmt.Errorf("no data received for %s: %w", wd.timeout, cause)
		}
		return fail(fmt.Errorf("performing GET request: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return fail(&RetrievalError{URL: reqURL, StatusCode: resp.StatusCode, Body: string(body)})
	}
	if config.AcceptFunc != nil {
		if err := config.AcceptFunc(resp); err != nil {
			_ = resp.Body.Close()
			return fail(err)
		}
	}

	d := &Downloader{
		URL:      reqURL,
		Done:     make(chan struct{}),
		Resp:     resp,
		size:     resp.ContentLength,
		watchdog: wd,
		release:  release,
	}
	if d.size > 0 && d.size <= maxPrealloc {
		d.out.Grow(int(d.size))
	}
	if config.Progress != nil {
		d.tracker = config.Progress.Start(reqURL, d.size)
	}
	return d, nil
}
