package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Transactor opens write transactions. *storage.Storage satisfies it.
type Transactor interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage Transactor
	queue   chan ActionItem
	log     logrus.FieldLogger
}

func NewOperator(s Transactor, queue chan ActionItem, log logrus.FieldLogger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) processItem(item ActionItem) error {
	// the caller may have given up while the item sat in the queue
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.log.WithError(rbErr).WithField("action", actionName(item.action)).Error("rollback failed")
		}
		return err
	}

	if err = writer.Commit(); err != nil {
		o.log.WithError(err).WithField("action", actionName(item.action)).Error("commit failed")
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func actionName(a actions.IAction) string {
	return fmt.Sprintf("%T", a)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
