package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashcrush/internal/models"
)

func TestBuildSplits(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		splitType models.SplitType
		shares    []Share
		want      []string
		wantErr   error
	}{
		{
			name:      "equal even",
			amount:    "100",
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "A"}, {UserID: "B"}},
			want:      []string{"50", "50"},
		},
		{
			name:      "equal with leftover cent",
			amount:    "100",
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "A"}, {UserID: "B"}, {UserID: "C"}},
			want:      []string{"33.34", "33.33", "33.33"},
		},
		{
			name:      "equal with two leftover cents",
			amount:    "0.05",
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "A"}, {UserID: "B"}, {UserID: "C"}},
			want:      []string{"0.02", "0.02", "0.01"},
		},
		{
			name:      "percentage",
			amount:    "200",
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "A", Percentage: d("25")},
				{UserID: "B", Percentage: d("75")},
			},
			want: []string{"50", "150"},
		},
		{
			name:      "percentage remainder to last",
			amount:    "45.55",
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "A", Percentage: d("50")},
				{UserID: "B", Percentage: d("50")},
			},
			want: []string{"22.78", "22.77"},
		},
		{
			name:      "percentage not totalling 100",
			amount:    "100",
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "A", Percentage: d("50")},
				{UserID: "B", Percentage: d("49")},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:      "percentage over 100 leaving last share negative",
			amount:    "100",
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "A", Percentage: d("100.01")},
				{UserID: "B", Percentage: d("0")},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:      "negative percentage",
			amount:    "100",
			splitType: models.SplitPercentage,
			shares: []Share{
				{UserID: "A", Percentage: d("150")},
				{UserID: "B", Percentage: d("-50")},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:      "exact",
			amount:    "10",
			splitType: models.SplitExact,
			shares: []Share{
				{UserID: "A", Amount: d("7.5")},
				{UserID: "B", Amount: d("2.5")},
			},
			want: []string{"7.5", "2.5"},
		},
		{
			name:      "no participants",
			amount:    "10",
			splitType: models.SplitEqual,
			wantErr:   ErrInvalidParticipant,
		},
		{
			name:      "zero amount",
			amount:    "0",
			splitType: models.SplitEqual,
			shares:    []Share{{UserID: "A"}},
			wantErr:   ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSplits(d(tt.amount), "A", tt.splitType, tt.shares)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i, w := range tt.want {
				assert.True(t, got[i].Amount.Equal(d(w)), "split %d = %s, want %s", i, got[i].Amount, w)
				assert.Equal(t, got[i].UserID == "A", got[i].Paid)
			}
			// Built splits always satisfy the validator.
			assert.NoError(t, ValidateExpense(d(tt.amount), got, nil))
		})
	}
}

func TestBuildSplits_UnknownType(t *testing.T) {
	_, err := BuildSplits(d("10"), "A", models.SplitType("shares"), []Share{{UserID: "A"}})
	assert.Error(t, err)
}

func TestBuildSplits_EqualConservesAmount(t *testing.T) {
	amounts := []string{"0.01", "1", "9.99", "100", "333.33", "1000.07"}
	for _, a := range amounts {
		for n := 1; n <= 7; n++ {
			shares := make([]Share, n)
			for i := range shares {
				shares[i] = Share{UserID: string(rune('A' + i))}
			}
			got, err := BuildSplits(d(a), "A", models.SplitEqual, shares)
			require.NoError(t, err)

			sum := d("0")
			for _, s := range got {
				sum = sum.Add(s.Amount)
			}
			assert.True(t, sum.Equal(d(a)), "%s split %d ways sums to %s", a, n, sum)
		}
	}
}

func TestMarkPaid(t *testing.T) {
	in := []models.Split{
		{UserID: "A", Amount: d("5"), Paid: false},
		{UserID: "B", Amount: d("5"), Paid: true},
	}
	out := MarkPaid("A", in)

	assert.True(t, out[0].Paid)
	assert.False(t, out[1].Paid)
	// Input is untouched.
	assert.True(t, in[1].Paid)
}
