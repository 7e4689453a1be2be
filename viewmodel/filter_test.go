package viewmodel

import (
	"clementus360/taskai/types"
	"testing"
)

func TestFilterTasks(t *testing.T) {
	tasks := []types.Task{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
		{ID: 3, Title: "c"},
	}

	tests := []struct {
		filter Filter
		want   []int64
	}{
		{FilterActive, []int64{1, 3}},
		{FilterCompleted, []int64{2}},
		{FilterAll, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := FilterTasks(tasks, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tasks, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}

	if len(tasks) != 3 || tasks[1].ID != 2 || !tasks[1].Completed {
		t.Fatalf("source slice was modified: %+v", tasks)
	}
}

func TestFilterResultIsIndependent(t *testing.T) {
	tasks := []types.Task{{ID: 1, Title: "a"}}
	got := FilterTasks(tasks, FilterAll)
	got[0].Title = "changed"
	if tasks[0].Title != "a" {
		t.Fatalf("filtered slice shares storage with the source")
	}
}

func TestParseFilterAndNext(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"", FilterAll, true},
		{"Active", FilterActive, true},
		{" completed ", FilterCompleted, true},
		{"archived", FilterAll, false},
	}
	for _, tt := range tests {
		got, ok := ParseFilter(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseFilter(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	f := FilterAll
	for _, want := range []Filter{FilterActive, FilterCompleted, FilterAll} {
		f = f.Next()
		if f != want {
			t.Fatalf("expected %v, got %v", want, f)
		}
	}
}
