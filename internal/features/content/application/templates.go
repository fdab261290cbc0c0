package application

// GeneratePromptTemplate is filled with, in order: template prompt, user
// prompt, human rules, target audience, length, default tone, rules block,
// constraints block.
const GeneratePromptTemplate = `
%s %s

Human like writing rules:
%s

Additional rules:
- Platform-specific rules override global guidelines when they conflict.
- Target Audience: %s
- Length: %s [*Adjust length according to target audience or idea]
- Default Tone: %s [*Adjust tone according to target audience or idea]
%s

Constraints:
%s

**Just give final output.**
  `

// EditPromptTemplate is filled with the original content and the edit request.
const EditPromptTemplate = `Here is the original content:
%s

Edit Request: %s

Please rewrite the content according to the edit request while maintaining the original style and format. Keep the same content type and platform requirements.
**just give final output do not share what u change or anything else**
`
