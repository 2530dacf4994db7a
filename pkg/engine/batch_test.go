package engine

import (
	"reflect"
	"testing"
)

func TestRunBatchIndependence(t *testing.T) {
	idx := testIndex(t)

	queries := []BatchQuery{
		{ID: "good", Sequence: "ATGCGATCG", ExpectedMatch: "sp_001"},
		{ID: "broken", Sequence: ""},
		{ID: "no_hit", Sequence: "AAAAAAAAAAA"},
	}

	result, err := idx.RunBatch(queries, 5, 50.0, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Results) != 3 {
		t.Fatalf("results = %d entries, want 3", len(result.Results))
	}

	good := result.Results["good"]
	if good.Error != "" || len(good.Matches) == 0 || good.Matches[0].SpeciesID != "sp_001" {
		t.Errorf("good query result = %+v", good)
	}

	broken := result.Results["broken"]
	if broken.Error == "" {
		t.Error("empty sequence should carry an error marker")
	}
	if len(broken.Matches) != 0 {
		t.Errorf("broken query matches = %v, want empty", broken.Matches)
	}

	noHit := result.Results["no_hit"]
	if noHit.Error != "" || len(noHit.Matches) != 0 {
		t.Errorf("no_hit result = %+v, want empty matches and no error", noHit)
	}
}

func TestRunBatchAccuracy(t *testing.T) {
	idx := testIndex(t)

	queries := []BatchQuery{
		{ID: "t1", Sequence: "ATGCGATCG", ExpectedMatch: "sp_001"},
		{ID: "t2", Sequence: "CGATCGATT", ExpectedMatch: "sp_001"}, // actually sp_002
		{ID: "t3", Sequence: "ATGCGATCG"},                          // no expectation
	}

	result, err := idx.RunBatch(queries, 5, 50.0, 1)
	if err != nil {
		t.Fatal(err)
	}

	report := result.Report
	if report.TotalQueries != 3 {
		t.Errorf("TotalQueries = %d, want 3", report.TotalQueries)
	}
	if report.WithExpectation != 2 {
		t.Errorf("WithExpectation = %d, want 2", report.WithExpectation)
	}
	if report.Correct != 1 {
		t.Errorf("Correct = %d, want 1", report.Correct)
	}
	if report.Accuracy != 50.0 {
		t.Errorf("Accuracy = %v, want 50.0", report.Accuracy)
	}
	if report.MeanBestScore <= 0 {
		t.Errorf("MeanBestScore = %v, want > 0", report.MeanBestScore)
	}
}

func TestRunBatchNoExpectations(t *testing.T) {
	idx := testIndex(t)

	result, err := idx.RunBatch([]BatchQuery{{ID: "q", Sequence: "ATGCGATCG"}}, 5, 50.0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if result.Report.WithExpectation != 0 || result.Report.Accuracy != 0 {
		t.Errorf("report = %+v, want zero expectation and zero accuracy", result.Report)
	}
}

func TestRunBatchGeneratedIDs(t *testing.T) {
	idx := testIndex(t)

	result, err := idx.RunBatch([]BatchQuery{
		{Sequence: "ATGCGATCG"},
		{Sequence: "CGATCGATT"},
	}, 5, 50.0, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"seq_1", "seq_2"} {
		if _, ok := result.Results[id]; !ok {
			t.Errorf("missing generated ID %s in results", id)
		}
	}
}

func TestRunBatchParallelMatchesSerial(t *testing.T) {
	idx := testIndex(t)

	queries := []BatchQuery{
		{ID: "a", Sequence: "ATGCGATCG", ExpectedMatch: "sp_001"},
		{ID: "b", Sequence: "CGATCGATT", ExpectedMatch: "sp_002"},
		{ID: "c", Sequence: "AAAAAAAAAAA"},
		{ID: "d", Sequence: ""},
		{ID: "e", Sequence: "atgcgatcg"},
	}

	serial, err := idx.RunBatch(queries, 5, 50.0, 1)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := idx.RunBatch(queries, 5, 50.0, 4)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(serial, parallel) {
		t.Errorf("parallel result differs from serial:\n%+v\nvs\n%+v", parallel, serial)
	}
}
