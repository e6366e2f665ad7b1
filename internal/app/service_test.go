package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/nameprep/internal/adapters/csvio"
	"github.com/okian/nameprep/internal/adapters/repository"
	"github.com/okian/nameprep/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.New()
	cfg.InputFile = filepath.Join(dir, "source.csv")
	cfg.OutputFile = filepath.Join(dir, "clean.csv")
	cfg.LookupFile = filepath.Join(dir, "lookup.csv")
	cfg.CorpusFile = filepath.Join(dir, "corpus.csv")
	cfg.ArtifactFile = filepath.Join(dir, "artifact.csv")
	return cfg
}

func TestServiceRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a lookup table and a messy source file", t, func() {
		dir := t.TempDir()
		cfg := testConfig(dir)
		writeFile(t, cfg.LookupFile, "raw_name,name_group\nchris,christopher\n")

		Convey("When normalizing typical rows", func() {
			writeFile(t, cfg.InputFile,
				"first_name,last_name,mob,yob,record_id\n"+
					"Chris,O'Brien,02,1990,r-1\n"+
					"Mary Jane,Smith,13,1850,r-2\n"+
					",Lee,6,1995,r-3\n")

			So(New(cfg).Run(ctx), ShouldBeNil)

			data, err := os.ReadFile(cfg.OutputFile)
			So(err, ShouldBeNil)
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			So(lines, ShouldHaveLength, 4)
			So(lines[0], ShouldEqual, "given,family,month,year,complete,given_first_word,given_middle_initial,given_all_but_first,given_nickname,given_all_but_final,given_final_initial,given_final_word,record_id")
			So(lines[1], ShouldEqual, "chris,obrien,2,1990,chrisobrien,chris,,,christopher,,,,r-1")
			So(lines[2], ShouldEqual, "maryjane,smith,,,maryjanesmith,mary,j,jane,mary,mary,j,jane,r-2")
			So(lines[3], ShouldEqual, ",lee,6,1995,lee,,,,,,,,r-3")
		})

		Convey("When the input has only the reserved columns", func() {
			writeFile(t, cfg.InputFile,
				"first_name,last_name,mob,yob\nJosé,García,7,1970\n")

			So(New(cfg).Run(ctx), ShouldBeNil)

			data, err := os.ReadFile(cfg.OutputFile)
			So(err, ShouldBeNil)
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			So(lines[1], ShouldEqual, "jose,garcia,7,1970,josegarcia,jose,,,jose,,,")
		})

		Convey("When the input is empty, the header is still written", func() {
			writeFile(t, cfg.InputFile, "first_name,last_name,mob,yob\n")

			So(New(cfg).Run(ctx), ShouldBeNil)

			data, err := os.ReadFile(cfg.OutputFile)
			So(err, ShouldBeNil)
			So(strings.Count(string(data), "\n"), ShouldEqual, 1)
		})

		Convey("When running with multiple workers, input order is preserved", func() {
			cfg.WorkerCount = 4
			var b strings.Builder
			b.WriteString("first_name,last_name,mob,yob,record_id\n")
			for i := 0; i < 200; i++ {
				fmt.Fprintf(&b, "Anna,Lee,5,1980,id-%04d\n", i)
			}
			writeFile(t, cfg.InputFile, b.String())

			So(New(cfg).Run(ctx), ShouldBeNil)

			data, err := os.ReadFile(cfg.OutputFile)
			So(err, ShouldBeNil)
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			So(lines, ShouldHaveLength, 201)
			for i, line := range lines[1:] {
				So(line, ShouldEndWith, fmt.Sprintf("id-%04d", i))
			}
		})

		Convey("When a reserved column is missing, the run fails with no output", func() {
			writeFile(t, cfg.InputFile, "first_name,last_name,yob\nChris,Lee,1990\n")

			err := New(cfg).Run(ctx)
			So(errors.Is(err, csvio.ErrMissingColumn), ShouldBeTrue)
			_, statErr := os.Stat(cfg.OutputFile)
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})

		Convey("When a row carries invalid UTF-8, the run fails with no output", func() {
			writeFile(t, cfg.InputFile,
				"first_name,last_name,mob,yob\nChris,Lee,2,1990\nBob,\xff\xfe,3,1991\n")

			err := New(cfg).Run(ctx)
			So(errors.Is(err, csvio.ErrInvalidEncoding), ShouldBeTrue)
			_, statErr := os.Stat(cfg.OutputFile)
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})

		Convey("When the lookup artifact violates an invariant, the run fails", func() {
			writeFile(t, cfg.LookupFile, "raw_name,name_group\nchris,christopher\nchristopher,kit\n")
			writeFile(t, cfg.InputFile, "first_name,last_name,mob,yob\nChris,Lee,2,1990\n")

			So(New(cfg).Run(ctx), ShouldNotBeNil)
		})
	})

	Convey("Given no lookup artifact", t, func() {
		dir := t.TempDir()
		cfg := testConfig(dir)
		writeFile(t, cfg.InputFile, "first_name,last_name,mob,yob\nChris,Lee,2,1990\n")

		Convey("The run fails up front", func() {
			err := New(cfg).Run(ctx)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestServiceBuildTable(t *testing.T) {
	ctx := context.Background()

	Convey("Given a raw nickname corpus", t, func() {
		dir := t.TempDir()
		cfg := testConfig(dir)

		var b strings.Builder
		b.WriteString("name,alias,cond_prob\n")
		b.WriteString("CHRIS,CHRISTOPHER,0.9\n")
		for _, name := range []string{"TOFFER", "KIT", "KRIS", "TOPHER", "CHRISTY"} {
			fmt.Fprintf(&b, "%s,CHRISTOPHER,0.8\n", name)
		}
		b.WriteString("AL,ALBERT,0.9\n") // group too thin to survive
		writeFile(t, cfg.CorpusFile, b.String())

		Convey("When building the table", func() {
			So(New(cfg).BuildTable(ctx), ShouldBeNil)

			groups, err := repository.NewFileStore(cfg.ArtifactFile).Load(ctx)
			So(err, ShouldBeNil)
			So(groups["chris"], ShouldEqual, "christopher")
			_, hasAl := groups["al"]
			So(hasAl, ShouldBeFalse)
		})

		Convey("When the corpus file does not exist", func() {
			cfg.CorpusFile = filepath.Join(dir, "missing.csv")
			So(New(cfg).BuildTable(ctx), ShouldNotBeNil)
		})
	})
}
