package campaign

import (
	"testing"
)

func TestGetTotalPages(t *testing.T) {
	type args struct {
		totalCount int64
		limit      int64
	}
	tests := []struct {
		name string
		args args
		want int64
	}{
		{
			name: "exact multiple",
			args: args{
				totalCount: 10,
				limit:      10,
			},
			want: 1,
		},
		{
			name: "half page",
			args: args{
				totalCount: 10,
				limit:      5,
			},
			want: 2,
		},
		{
			name: "partial last page",
			args: args{
				totalCount: 10,
				limit:      3,
			},
			want: 4,
		},
		{
			name: "limit of one",
			args: args{
				totalCount: 10,
				limit:      1,
			},
			want: 10,
		},
		{
			name: "zero limit",
			args: args{
				totalCount: 10,
				limit:      0,
			},
			want: 0,
		},
		{
			name: "no documents",
			args: args{
				totalCount: 0,
				limit:      10,
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getTotalPages(tt.args.totalCount, tt.args.limit); got != tt.want {
				t.Errorf("getTotalPages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrepPaginationInfos(t *testing.T) {
	t.Run("clamps page to last page", func(t *testing.T) {
		info := prepPaginationInfos(10, 5, 5)
		if info.CurrentPage != 2 {
			t.Errorf("unexpected current page: %d", info.CurrentPage)
		}
	})

	t.Run("defaults invalid page and limit", func(t *testing.T) {
		info := prepPaginationInfos(25, 0, 0)
		if info.CurrentPage != 1 {
			t.Errorf("unexpected current page: %d", info.CurrentPage)
		}
		if info.PageSize != 10 {
			t.Errorf("unexpected page size: %d", info.PageSize)
		}
		if info.TotalPages != 3 {
			t.Errorf("unexpected total pages: %d", info.TotalPages)
		}
	})
}
