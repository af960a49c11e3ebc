package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/davidbz/quill/internal/report"
)

func renderSEO(w io.Writer, seo *report.SEOReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ASPECT\tSCORE\tSUGGESTION\tFEEDBACK")
	fmt.Fprintf(tw, "Title\t%d\t%s\t%s\n", seo.Title.Score, seo.Title.Suggestion, seo.Title.Feedback)
	fmt.Fprintf(tw, "Meta description\t%d\t%s\t%s\n",
		seo.MetaDescription.Score, seo.MetaDescription.Suggestion, seo.MetaDescription.Feedback)
	fmt.Fprintf(tw, "Readability\t%d\t-\t%s\n", seo.Readability.Score, seo.Readability.Feedback)
	fmt.Fprintf(tw, "Keyword density\t%d\t-\t%s\n", seo.KeywordDensity.Score, seo.KeywordDensity.Feedback)
	_ = tw.Flush()
}

func renderKeywords(w io.Writer, list report.KeywordList) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYWORD\tVOLUME\tDIFFICULTY")
	for _, suggestion := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", suggestion.Keyword, suggestion.Volume, suggestion.Difficulty)
	}
	_ = tw.Flush()
}

func renderSummary(w io.Writer, summary *report.SummaryReport) {
	fmt.Fprintf(w, "SEO score:    %d\n", summary.SEOScore)
	fmt.Fprintf(w, "Readability:  %d  %s\n", summary.Readability.Score, summary.Readability.Feedback)
	fmt.Fprintf(w, "Word count:   %d\n", summary.WordCount)
	fmt.Fprintf(w, "Tone:         %s\n", summary.Tone)
	fmt.Fprintf(w, "Structure:    H1 %d, H2 %d, H3 %d\n",
		summary.Structure.H1, summary.Structure.H2, summary.Structure.H3)

	if len(summary.Keywords) > 0 {
		fmt.Fprintln(w, "\nKeywords:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, keyword := range summary.Keywords {
			fmt.Fprintf(tw, "  %s\t%d\n", keyword.Keyword, keyword.Frequency)
		}
		_ = tw.Flush()
	}

	if len(summary.ActionableInsights) > 0 {
		fmt.Fprintln(w, "\nInsights:")
		for _, insight := range summary.ActionableInsights {
			fmt.Fprintf(w, "  - %s\n", insight)
		}
	}
}
