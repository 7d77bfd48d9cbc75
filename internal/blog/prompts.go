package blog

// LLM prompt templates. Data only.

// summaryPrompt asks for a technical summary of a video and its code.
// Args: transcript text, code analysis text.
const summaryPrompt = `Analyze the following video transcript and code files to create a comprehensive summary:

Transcript: %s

Code Files: %s

Create a detailed technical summary including:
1. Main concepts covered
2. Key implementation details
3. Important code snippets
4. Prerequisites and setup requirements`

// articlePrompt turns a summary into a Markdown blog post.
// Args: summary text.
const articlePrompt = `Convert the following summary into a well-structured technical blog post:
%s

Create a professional blog post with the following structure:
1. A clear, descriptive title that captures the main topic
2. A brief introduction explaining what will be covered
3. Prerequisites section listing all required tools and libraries
4. Implementation section with:
   - Step-by-step instructions
   - Code snippets with proper markdown formatting
   - Clear explanations for each step
5. Key features and capabilities
6. Conclusion summarizing the main points

Format Requirements:
- Use markdown formatting
- Use code blocks with language specification (` + "```python" + `)
- Use headers with appropriate levels (# for title, ## for main sections)
- Include bullet points where appropriate
- Make code snippets easy to copy and use
- Add brief explanations before each code block
- Include any setup instructions or environment configurations`
