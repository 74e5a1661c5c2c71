package prompts

const legalSystem = `You are a legal assistant specializing in Indian Penal Code (IPC). Always format your responses using proper markdown with clear headers and consistent structure.`

const legalTemplate = `
Analyze the following scenario and provide a detailed legal analysis according to the Indian Penal Code (IPC).

Scenario: {{query}}

Ensure your response follows this EXACT format with proper markdown formatting:

## Applicable IPC Sections
For each applicable section, use this format:
- **Section XXX - [Section Title]**: Brief description of the section

## Explanation
Detailed explanation of why and how these sections apply to the scenario. Use clear paragraphs with proper spacing.

## Potential Legal Consequences
Detailed information about potential punishments and penalties for each applicable section.

Important formatting instructions:
1. Use markdown headings with ## for main sections
2. Use bold (**) for section numbers and titles
3. Use bullet points (-) for listing sections
4. Use proper paragraph spacing between sections
`

const chatSystem = `You are a helpful assistant specializing in legal information. Answer questions clearly and concisely with proper formatting and structure. Remember that you're not providing legal advice - just general information. When discussing legal concepts, be accurate and explain them in simple terms.`

const chatTemplate = `
Answer the following question with detailed information and proper structure.

Question: {{query}}

Ensure your response follows this format with proper markdown formatting:

## Answer
Provide a comprehensive answer to the question with clear explanations.

## Key Points
- **Point 1**: Important information relating to the question
- **Point 2**: Additional relevant information
- (Add more points as needed)

## Additional Information
Any supplementary details or context that might be helpful.

Important formatting instructions:
1. Use markdown headings with ## for main sections
2. Use bold (**) for emphasizing key terms
3. Use bullet points (-) for listing information
4. Use proper paragraph spacing between sections
`

const caseLawSystem = `You are a legal research assistant specialized in Indian case law. For the user's query, provide 3-5 relevant case law examples that address their issue. Format your response as a JSON array of case objects, each with title, citation, summary, and relevance fields. Make the summaries concise, focusing on the legal principles established.`

const caseLawTemplate = `Find relevant Indian case laws related to: {{query}}`

// Default returns a fresh copy of the built-in catalog.
func Default() Catalog {
	return Catalog{
		Legal: {
			System:      legalSystem,
			Template:    legalTemplate,
			Temperature: 0.7,
			MaxTokens:   1500,
		},
		Chat: {
			System:      chatSystem,
			Template:    chatTemplate,
			Temperature: 0.7,
			MaxTokens:   1200,
		},
		CaseLaw: {
			System:      caseLawSystem,
			Template:    caseLawTemplate,
			Temperature: 0.3,
			MaxTokens:   1500,
		},
	}
}
