package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/chitieu/internal/category"
	"github.com/Veraticus/chitieu/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2026, time.January, 11, 10, 0, 0, 0, time.UTC)
}

func TestFallback_Extract(t *testing.T) {
	f := NewFallback(category.Default(), WithClock(fixedClock))
	ctx := context.Background()

	tests := []struct {
		name     string
		text     string
		want     *model.ExtractedExpense
		wantErr  string
		success  bool
		needsCat bool
	}{
		{
			name:    "category found",
			text:    "mua sách 20k",
			success: true,
			want: &model.ExtractedExpense{
				Amount:       20000,
				CategoryID:   "books",
				CategoryName: "Books",
				Description:  "mua sách 20k",
				Date:         "2026-01-11",
				Confidence:   model.ConfidenceMedium,
			},
		},
		{
			name:    "relative date",
			text:    "hôm qua đổ xăng 50k",
			success: true,
			want: &model.ExtractedExpense{
				Amount:       50000,
				CategoryID:   "fuel",
				CategoryName: "Fuel",
				Description:  "hôm qua đổ xăng 50k",
				Date:         "2026-01-10",
				Confidence:   model.ConfidenceMedium,
			},
		},
		{
			name:     "no category",
			text:     "abc 15k",
			success:  true,
			needsCat: true,
			want: &model.ExtractedExpense{
				Amount:       15000,
				CategoryID:   model.OtherCategoryID,
				CategoryName: model.OtherCategoryName,
				Description:  "abc 15k",
				Date:         "2026-01-11",
				Confidence:   model.ConfidenceLow,
			},
		},
		{
			name:     "no amount",
			text:     "xin chào bạn",
			success:  false,
			needsCat: true,
			wantErr:  MsgAmountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Extract(ctx, tt.text)
			assert.Equal(t, tt.success, got.Success)
			assert.Equal(t, tt.needsCat, got.NeedsManualCategory)
			assert.Equal(t, tt.wantErr, got.Error)
			if tt.want == nil {
				assert.Nil(t, got.Data)
				return
			}
			require.NotNil(t, got.Data)
			assert.Equal(t, *tt.want, *got.Data)
		})
	}
}

func TestFallback_Deterministic(t *testing.T) {
	f := NewFallback(category.Default(), WithClock(fixedClock))
	ctx := context.Background()

	for _, text := range []string{"mua sách 20k", "abc 15k", "xin chào bạn"} {
		first := f.Extract(ctx, text)
		second := f.Extract(ctx, text)
		assert.Equal(t, first, second, text)
	}
}

func TestFallback_Name(t *testing.T) {
	assert.Equal(t, "regex", NewFallback(category.Default()).Name())
}
