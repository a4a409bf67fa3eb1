package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/parquet-go/parquet-go"
)

// Match is one row of ipl.csv with typed numeric columns.
type Match struct {
	ID            int64   `parquet:"id"`
	Season        int32   `parquet:"season"`
	City          string  `parquet:"city"`
	Date          string  `parquet:"date"`
	Team1         string  `parquet:"team1"`
	Team2         string  `parquet:"team2"`
	TossWinner    string  `parquet:"toss_winner"`
	TossDecision  string  `parquet:"toss_decision"`
	Result        string  `parquet:"result"`
	DLApplied     int32   `parquet:"dl_applied"`
	Winner        string  `parquet:"winner"`
	WinByRuns     int32   `parquet:"win_by_runs"`
	WinByWickets  int32   `parquet:"win_by_wickets"`
	PlayerOfMatch string  `parquet:"player_of_match"`
	Venue         string  `parquet:"venue"`
	Umpire1       *string `parquet:"umpire1,optional"`
	Umpire2       *string `parquet:"umpire2,optional"`
	Umpire3       *string `parquet:"umpire3,optional"`
}

func atoi(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatalf("bad number %q: %v", s, err)
	}
	return n
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func main() {
	in, err := os.Open("ipl.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	records, err := csv.NewReader(in).ReadAll()
	if err != nil {
		log.Fatal(err)
	}

	matches := make([]Match, 0, len(records)-1)
	for _, r := range records[1:] {
		matches = append(matches, Match{
			ID:            atoi(r[0]),
			Season:        int32(atoi(r[1])),
			City:          r[2],
			Date:          r[3],
			Team1:         r[4],
			Team2:         r[5],
			TossWinner:    r[6],
			TossDecision:  r[7],
			Result:        r[8],
			DLApplied:     int32(atoi(r[9])),
			Winner:        r[10],
			WinByRuns:     int32(atoi(r[11])),
			WinByWickets:  int32(atoi(r[12])),
			PlayerOfMatch: r[13],
			Venue:         r[14],
			Umpire1:       optional(r[15]),
			Umpire2:       optional(r[16]),
			Umpire3:       optional(r[17]),
		})
	}

	pq, err := os.Create("ipl.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer pq.Close()

	writer := parquet.NewGenericWriter[Match](pq)
	if _, err := writer.Write(matches); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	raw, err := os.ReadFile("ipl.csv")
	if err != nil {
		log.Fatal(err)
	}
	gz, err := os.Create("ipl.csv.gz")
	if err != nil {
		log.Fatal(err)
	}
	defer gz.Close()

	zw := gzip.NewWriter(gz)
	if _, err := zw.Write(raw); err != nil {
		log.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated ipl.parquet and ipl.csv.gz with %d matches", len(matches))
}
