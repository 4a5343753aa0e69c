package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pipsync/internal/types"
)

const outOfSyncMsg = "requirements out of sync"

// Check runs Sync without writing and fails when any requirements.txt would
// change.
func (s Service) Check(ctx context.Context, req SyncRequest) (SyncResult, error) {
	req.DryRun = true
	result, err := s.Sync(ctx, req)
	if err != nil {
		return SyncResult{}, err
	}
	var stale []string
	for _, file := range result.Report.Files {
		if file.Status == types.FileStatusSynced {
			stale = append(stale, file.Output)
			log.Ctx(ctx).Warn().Str("output", file.Output).Int("changes", len(file.Changes)).Msg("requirements out of date")
		}
	}
	if len(stale) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %d of %d files", outOfSyncMsg, len(stale), len(result.Report.Files)))
	}
	return result, nil
}
