package main

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrup-ai/get.cyrup.ai/book"
	"github.com/cyrup-ai/get.cyrup.ai/core"
	"github.com/cyrup-ai/get.cyrup.ai/engine"
	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

const writeLockTimeout = 10 * time.Second

var (
	flagBuildOutput string
	flagBuildJS     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <book-dir>",
	Short: "Generate a search index from a book's markdown sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagBuildOutput, "output", "o", ".", "Directory to write the index files into")
	buildCmd.Flags().BoolVar(&flagBuildJS, "js", false, "Also write searchindex.js for file:// browsing")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, err := book.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	docs := b.Documents(cfg.Search.HeadingSplitLevel)
	log.Printf("%d chapters, %d sections", len(b.Chapters), len(docs))

	var searcher engine.Engine
	searcher.Init(cfg.EngineInitOptions())
	defer searcher.Close()

	// 持久存储中上次生成时多出的文档
	for _, docId := range searcher.DocIds() {
		if docId >= uint64(len(docs)) {
			searcher.RemoveDocument(docId)
		}
	}
	for i, doc := range docs {
		searcher.IndexDocument(uint64(i), doc)
	}
	searcher.FlushIndex()

	searchIndex := searcher.Snapshot()
	if err := core.Verify(searchIndex); err != nil {
		return fmt.Errorf("generated index is inconsistent: %w", err)
	}

	var jsonBuf bytes.Buffer
	if err := searchIndex.WriteJSON(&jsonBuf); err != nil {
		return err
	}
	if err := writeOutput("searchindex", ".json", jsonBuf.Bytes(), cfg.Search.HashFiles); err != nil {
		return err
	}

	if flagBuildJS {
		var jsBuf bytes.Buffer
		if err := searchIndex.WriteJS(&jsBuf); err != nil {
			return err
		}
		if err := writeOutput("searchindex", ".js", jsBuf.Bytes(), cfg.Search.HashFiles); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(stem, ext string, data []byte, hashFiles bool) error {
	name := stem + ext
	if hashFiles {
		name = utils.HashedFileName(stem, ext, data)
	}
	path := filepath.Join(flagBuildOutput, name)
	if err := utils.WriteFileLocked(path, data, writeLockTimeout); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	log.Printf("wrote %s (%d bytes)", path, len(data))
	return nil
}
