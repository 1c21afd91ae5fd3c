// Prints the contents of torrent files.
//
// Example run:
// $ torrentinfo ubuntu-20.04.2-live-server-amd64.iso.torrent
// ubuntu-20.04.2-live-server-amd64.iso.torrent
//     name                ubuntu-20.04.2-live-server-amd64.iso
//     announce url        https://torrent.ubuntu.com/announce
//     created by          mktorrent 1.1
//     created on          2021-02-01 17:52:16 UTC
//     num files           1
//     total size          1.2 GiB
//     info hash           a2a786746917b9e74b0b19986d82d3a1393cce19
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bradfitz/iter"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/fuchsi/torrentinfo/bencode"
	"github.com/fuchsi/torrentinfo/internal/pprint"
	"github.com/fuchsi/torrentinfo/metainfo"
)

const (
	indent   = "    "
	colWidth = 19
)

type args struct {
	Files      bool   `arg:"-f,--files" help:"show files within the torrent"`
	Details    bool   `arg:"-d,--details" help:"show detailed information about the torrent"`
	Everything bool   `arg:"-e,--everything" help:"print everything about the torrent"`
	NoColour   bool   `arg:"-n,--nocolour" help:"no colours"`
	Filename   string `arg:"positional,required" help:"the torrent file"`
}

func (args) Description() string {
	return "A torrent file parser"
}

var (
	styles = pprint.DefaultStyles()
	sBold  = color.New(color.Bold)
)

func main() {
	var flags args
	arg.MustParse(&flags)
	if flags.NoColour {
		color.NoColor = true
	}
	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Application Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags args) error {
	buf, err := os.ReadFile(flags.Filename)
	if err != nil {
		return err
	}

	fmt.Println(sBold.Sprint(filepath.Base(flags.Filename)))

	if flags.Everything {
		root, err := bencode.Decode(buf)
		if err != nil {
			return err
		}
		pprint.Tree(os.Stdout, root, indent, styles)
		return nil
	}

	mi, err := metainfo.Parse(buf)
	if err != nil {
		return err
	}
	info := &mi.Info

	if !flags.Details {
		printSummary(mi)
	}
	if flags.Files || flags.Details {
		printFiles(info)
	}
	if flags.Details {
		printDetails(info)
	}
	return nil
}

func printSummary(mi *metainfo.MetaInfo) {
	if mi.Info.Name != "" {
		printLine("name", mi.Info.Name)
	}
	if mi.Comment != "" {
		printLine("comment", mi.Comment)
	}
	if mi.Announce != "" {
		printLine("announce url", mi.Announce)
	}
	if mi.CreatedBy != "" {
		printLine("created by", mi.CreatedBy)
	}
	if t, ok := mi.CreationTime(); ok {
		printLine("created on", t.Format("2006-01-02 15:04:05 MST"))
	}
	if mi.Encoding != "" {
		printLine("encoding", mi.Encoding)
	}
	printLine("num files", fmt.Sprint(mi.Info.NumFiles()))
	printLine("total size", styles.Number.Sprint(humanize.IBytes(uint64(mi.Info.TotalLength()))))
	printLine("info hash", mi.HashInfoBytes().HexString())
}

func printFiles(info *metainfo.Info) {
	fmt.Printf("%s%s\n", indent, styles.Label.Sprint("files"))
	files := info.UpvertedFiles()
	for i := range iter.N(len(files)) {
		f := files[i]
		fmt.Printf("%s%s\n", strings.Repeat(indent, 2), styles.Label.Sprint(i))
		fmt.Printf("%s%s\n", strings.Repeat(indent, 3), f.DisplayPath(info))
		fmt.Printf("%s%s\n", strings.Repeat(indent, 3), styles.Number.Sprint(humanize.IBytes(uint64(f.Length))))
	}
}

func printDetails(info *metainfo.Info) {
	fmt.Printf("%s%s\n", indent, styles.Label.Sprint("piece length"))
	fmt.Printf("%s%d\n", strings.Repeat(indent, 2), info.PieceLength)
	fmt.Printf("%s%s\n", indent, styles.Label.Sprint("pieces"))
	fmt.Printf("%s%s\n", strings.Repeat(indent, 2), styles.Bytes.Sprintf("[%d Bytes]", len(info.Pieces)))
	private := false
	if info.Private != nil {
		private = *info.Private
	}
	fmt.Printf("%s%s\n", indent, styles.Label.Sprint("private"))
	fmt.Printf("%s%t\n", strings.Repeat(indent, 2), private)
}

func printLine(name, value string) {
	fmt.Printf("%s%s %s%s\n", indent, styles.Label.Sprint(name), strings.Repeat(" ", colWidth-len(name)), value)
}
