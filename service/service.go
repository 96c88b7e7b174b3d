package service

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/yuyang0/kvstorage/storage"
	"github.com/yuyang0/kvstorage/store"
	"github.com/yuyang0/kvstorage/store/factory"
	"github.com/yuyang0/kvstorage/types"
)

// Service holds the two standard cores, one over persistent storage and one
// over process scoped storage. Build it once and pass it where needed.
type Service struct {
	Local   *storage.Core
	Session *storage.Core

	stores []store.Store
	logger *slog.Logger
}

func New(cfg *types.Config, logger *slog.Logger, opts ...storage.Option) (*Service, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	svc := &Service{
		logger: logger,
	}
	local, err := svc.newCore(&cfg.Local, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create local storage")
	}
	session, err := svc.newCore(&cfg.Session, opts)
	if err != nil {
		svc.Close()
		return nil, errors.Wrapf(err, "failed to create session storage")
	}
	svc.Local, svc.Session = local, session
	logger.Info("storage ready", "local", cfg.Local.Type, "session", cfg.Session.Type)
	return svc, nil
}

func (svc *Service) newCore(cfg *types.StoreConfig, opts []storage.Option) (*storage.Core, error) {
	stor, err := factory.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	svc.stores = append(svc.stores, stor)
	// the configured provider always wins over one passed in opts
	all := make([]storage.Option, 0, len(opts)+2)
	all = append(all, storage.WithLogger(svc.logger))
	all = append(all, opts...)
	all = append(all, storage.WithStorageProvider(stor))
	return storage.New(all...), nil
}

// Close releases the providers that hold connections or files.
func (svc *Service) Close() error {
	var errs error
	for _, stor := range svc.stores {
		closer, ok := stor.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			svc.logger.Error("failed to close store", "err", err)
			errs = errors.CombineErrors(errs, err)
		}
	}
	svc.stores = nil
	return errs
}
