package channel

import "log/slog"

//go:generate mockgen -destination=mocks/mock_indexer.go -package=mocks github.com/vmunix/mediascan/internal/channel Indexer

// ScanCallback is invoked once per path when indexing finishes.
// err is nil when every backend accepted the path.
type ScanCallback func(path string, err error)

// Indexer is the media indexing service reached by scanFile.
//
// ScanFile must return without waiting for the scan. mimeTypes carries an
// optional MIME hint per path and onComplete an optional completion
// notification; the handler leaves both unset, so neither the outcome nor any
// error of the scan is ever observed by the caller.
type Indexer interface {
	ScanFile(paths []string, mimeTypes []string, onComplete ScanCallback)
}

// Handler answers method calls on the media scanner channel.
// It holds no per-call state and may be shared between goroutines.
type Handler struct {
	indexer Indexer
	logger  *slog.Logger
}

// NewHandler creates a handler that forwards scanFile calls to indexer.
func NewHandler(indexer Indexer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		indexer: indexer,
		logger:  logger.With("component", "channel", "channel", Name),
	}
}

// Handle produces exactly one Response for req.
func (h *Handler) Handle(req Request) Response {
	if req.Method != MethodScanFile {
		h.logger.Debug("method not implemented", "method", req.Method)
		return NotImplemented()
	}

	path, ok := req.Path()
	if !ok {
		h.logger.Debug("rejecting scanFile without path")
		return Failure(CodeInvalidPath, MessageInvalidPath, nil)
	}

	h.indexer.ScanFile([]string{path}, nil, nil)
	h.logger.Debug("scan dispatched", "path", path)
	return Success(nil)
}
