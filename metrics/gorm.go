package metrics

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const startedAtKey = "metrics:started_at"

// GormPlugin times every create, query, update, delete and raw statement.
type GormPlugin struct{}

func (GormPlugin) Name() string {
	return "metrics"
}

func (GormPlugin) Initialize(db *gorm.DB) error {
	callbacks := db.Callback()
	for _, register := range []func() error{
		func() error {
			return callbacks.Create().Before("gorm:create").Register("metrics:before_create", start)
		},
		func() error {
			return callbacks.Create().After("gorm:create").Register("metrics:after_create", finish("create"))
		},
		func() error {
			return callbacks.Query().Before("gorm:query").Register("metrics:before_query", start)
		},
		func() error {
			return callbacks.Query().After("gorm:query").Register("metrics:after_query", finish("query"))
		},
		func() error {
			return callbacks.Update().Before("gorm:update").Register("metrics:before_update", start)
		},
		func() error {
			return callbacks.Update().After("gorm:update").Register("metrics:after_update", finish("update"))
		},
		func() error {
			return callbacks.Delete().Before("gorm:delete").Register("metrics:before_delete", start)
		},
		func() error {
			return callbacks.Delete().After("gorm:delete").Register("metrics:after_delete", finish("delete"))
		},
		func() error {
			return callbacks.Raw().Before("gorm:raw").Register("metrics:before_raw", start)
		},
		func() error {
			return callbacks.Raw().After("gorm:raw").Register("metrics:after_raw", finish("raw"))
		},
	} {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func start(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func finish(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		value, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		startedAt, ok := value.(time.Time)
		if !ok {
			return
		}
		err := db.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
		RecordDBQuery(operation, time.Since(startedAt), err)
	}
}
