package usecase

import (
	"fmt"
	"strings"

	"careernav/internal/model"
)

func buildAnalysisPrompt(targetRole, content string) string {
	return fmt.Sprintf(`You are an expert career coach, technical interviewer, and professional resume writer.
Analyze the following resume for the role of "%s".
%s
Return your answer STRICTLY in JSON format with this schema:
{
  "readinessScore": <integer 0-100, overall fit for the target role>,
  "atsScore": <integer 0-100, how well this resume parses in an Applicant Tracking System>,
  "resumeQuality": <integer 0-100>,
  "skillMatch": <integer 0-100>,
  "projectStrength": <integer 0-100>,
  "interviewReadiness": <integer 0-100>,
  "feedback": "<overall feedback paragraph>",
  "strengths": [<3-5 key strengths as strings>],
  "gaps": [<3-5 missing skills or areas for improvement as strings>],
  "rewrittenContent": "<the full resume rewritten as concise markdown, under 450 words, using Action-Context-Result bullet points. Keep every employer name, job title, and date EXACTLY as in the original - never invent employers, roles, or dates. Weave industry-standard adjacent keywords into skill mentions where honest>",
  "addedKeywords": [<the keywords you injected into the rewrite, as strings>],
  "roadmap": [
    {
      "title": "<short actionable step>",
      "description": "<one or two sentences>",
      "category": "<one of: skill, project, practice, interview>",
      "order": <integer, 1-based priority rank>
    }
  ]
}

The roadmap must contain 6 to 8 steps sorted by priority (order).`, targetRole, resumeSection(content))
}

func resumeSection(content string) string {
	if strings.TrimSpace(content) == "" {
		return "\nThe resume is attached as a file.\n"
	}
	return fmt.Sprintf("\nResume content:\n\"%s\"\n", content)
}

func buildScanPrompt(content string) string {
	return fmt.Sprintf(`Read the following resume text and infer basic facts about the candidate.

Return your answer STRICTLY in JSON format:
{
  "candidateName": "<the candidate's name, or empty string if unclear>",
  "suggestedRole": "<the job title this resume is best suited for>",
  "skills": [<the candidate's top 5 skills as strings>]
}

Resume:
%s`, content)
}

const interviewerPersona = `You are a friendly but rigorous technical interviewer conducting a mock interview.
Rules:
- Ask exactly one question at a time.
- Before asking the next question, briefly evaluate the candidate's previous answer.
- If the candidate says they don't know, accept it gracefully and pivot to another topic.
- Keep every reply under 100 words.`

func buildWelcomePrompt(targetRole, resumeExcerpt string) string {
	return fmt.Sprintf(`%s

You are starting a mock interview for the role of "%s".
Candidate resume excerpt:
%s

Introduce yourself in one or two sentences and ask one opening question grounded in the resume. Respond with plain text only.`,
		interviewerPersona, targetRole, resumeExcerpt)
}

func buildTurnPrompt(targetRole string, history []model.InterviewMessage, userMessage string) string {
	var transcript strings.Builder
	for _, msg := range history {
		role := "CANDIDATE"
		if msg.Role == model.MessageRoleAI {
			role = "INTERVIEWER"
		}
		fmt.Fprintf(&transcript, "%s: %s\n", role, msg.Content)
	}

	return fmt.Sprintf(`%s

The role under discussion is "%s".

Transcript so far:
%s
The candidate just said: "%s"

Reply as the interviewer. Respond with plain text only.`,
		interviewerPersona, targetRole, transcript.String(), userMessage)
}
