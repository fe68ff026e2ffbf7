package notification_log

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/mollie-ideal/pkg/types"
)

func TestScanRequest_Defaults(t *testing.T) {
	req := &ScanRequest{Size: 1000, From: -3}
	require.NoError(t, req.normalize())
	require.Equal(t, maxScanSize, req.Size)
	require.Zero(t, req.From)
	require.Equal(t, "notification_time", req.SortBy)
}

func TestScanRequest_RejectsUnknownColumns(t *testing.T) {
	req := &ScanRequest{SortBy: "id; drop table payment_notification_log"}
	require.ErrorIs(t, req.normalize(), ErrInvalidScan)

	req = &ScanRequest{Filters: []*types.CommonFilter{{Field: "data", Operator: types.CommonFilterOperatorEq, Values: []any{"x"}}}}
	require.ErrorIs(t, req.normalize(), ErrInvalidScan)

	req = &ScanRequest{Filters: []*types.CommonFilter{{Field: "status", Operator: types.CommonFilterOperatorIn, Values: []any{"rejected"}}}}
	require.NoError(t, req.normalize())
}
