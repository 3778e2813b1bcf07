package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mkuchak/get-youtube-transcription/pkg/formatters"
	"github.com/mkuchak/get-youtube-transcription/pkg/transcriptapi"
)

func main() {
	var (
		language            = flag.String("language", "en", "Requested language code")
		formatter           = flag.String("formatter", "json", "Formatter to use (json, text)")
		preserve_formatting = flag.Bool("preserve_formatting", false, "Preserve formatting tags in transcript text")
		with_timestamps     = flag.Bool("with_timestamps", true, "Include timestamps")
		with_language       = flag.Bool("with_language", true, "Include language information")
		proxy_string        = flag.String("proxy", "", "Proxy in username:password@hostname:port format")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Please provide a video ID")
		os.Exit(1)
	}

	var outputFormatter formatters.Formatter

	if *formatter == "text" {
		outputFormatter = formatters.NewTextFormatter(
			formatters.WithTimestamps(*with_timestamps),
			formatters.WithLanguage(*with_language),
		)
	} else {
		outputFormatter = formatters.NewJSONFormatter(
			formatters.WithTimestamps(*with_timestamps),
			formatters.WithLanguage(*with_language),
		)
	}

	client := transcriptapi.NewClient(
		transcriptapi.WithFormatter(outputFormatter),
		transcriptapi.WithProxy(*proxy_string),
	)

	videoID := flag.Arg(0)
	t, err := client.GetFormattedTranscript(videoID, *language, *preserve_formatting)

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", t)
}
