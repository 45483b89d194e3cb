package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateScanProgressCommandIsNotConstructed = errors.New(
	"UpdateScanProgressCommand must be created via NewUpdateScanProgressCommand constructor",
)

// UpdateScanProgressCommand reports the scanned count of one or more products.
// Each entry is the absolute count for its product, not an increment.
type UpdateScanProgressCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	progress  packing.ScanProgress

	guard guard.ConstructorGuard
}

func NewUpdateScanProgressCommand(sessionID kernel.UUID, progress packing.ScanProgress) (UpdateScanProgressCommand, error) {
	cmd := UpdateScanProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setProgress(progress),
	); err != nil {
		return UpdateScanProgressCommand{}, err
	}

	return cmd, nil
}

func (c UpdateScanProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateScanProgressCommandIsNotConstructed)
}

func (c UpdateScanProgressCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c UpdateScanProgressCommand) Progress() packing.ScanProgress {
	return c.progress.Clone()
}

func (c *UpdateScanProgressCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *UpdateScanProgressCommand) setProgress(progress packing.ScanProgress) error {
	if len(progress) == 0 {
		return errs.NewValueIsRequiredError("scan progress")
	}

	var err error
	for productID, count := range progress {
		if strings.TrimSpace(productID) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("product id"))
		}
		if count < 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"scan progress is invalid",
				fmt.Errorf("count %d of %s is negative", count, productID),
			))
		}
	}
	if err != nil {
		return err
	}

	c.progress = progress.Clone()
	return nil
}
