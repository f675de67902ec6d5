package app

import "fmt"

// Prompt builders interpolate exactly what the search layer produced; they
// never add context of their own.

func datasetGroundedPrompt(searchSummary, question string) string {
	return fmt.Sprintf(
		"You are a data analysis assistant answering questions based on the structured data provided.\n"+
			"Here are the search results from the selected structured document:\n%s\n\n"+
			"Based on these search results, answer the user's question: %q\n"+
			"If the document contains no relevant data, say that nothing was found in the structured "+
			"document and that you will search the internet on the next turn.",
		searchSummary, question)
}

func internetFallbackPrompt(searchSummary, question string) string {
	return fmt.Sprintf(
		"You are an intelligent assistant capable of internet search.\n"+
			"Here are the internet search results for the question: %q\n%s\n\n"+
			"Provide a comprehensive answer based on this information. If the internet search results "+
			"are not relevant or missing, politely let the user know.",
		question, searchSummary)
}

func generalPrompt(question string) string {
	return fmt.Sprintf(
		"You are a general-purpose AI assistant. When the user provides a structured document you "+
			"analyze that document. Without an attached document you answer general questions.\n"+
			"User question: %q",
		question)
}
