// Package llm backs the sentiment and generation stages with hosted LLM
// APIs, as an alternative to the Hugging Face inference models.
package llm

const continuationInstructions = `You continue a piece of seed text. The user message is the seed. Write the natural continuation of it as one flowing passage of plain prose. Do not repeat the seed, do not add headings, lists, or commentary, and do not address the reader. Stay in the mood the seed establishes.`

const classifierInstructions = `You are a binary sentiment classifier. Decide whether the user's text reads POSITIVE or NEGATIVE overall and how confident you are in that call. Ambiguous or factual text still gets the closer of the two labels, with a lower confidence. Respond with JSON holding "label" and "confidence" (between 0 and 1).`
