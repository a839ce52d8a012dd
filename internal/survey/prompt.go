package survey

import (
	"fmt"
	"strings"

	"litscan/internal/providers"
)

const analysisInstructions = `
Please analyze this paper focusing on Vision Language Action (VLA) models and resource constraints. Output results in CSV format with exactly two lines: header line and data line.

Use these headers (do not modify):
%s

Analysis Guidelines:
1. **architecture type**: classify as one of "end-to-end VLA", "hierarchical VLA", "hybrid architecture", "non-VLA"
2. **data bottleneck**: strictly "yes" or "no", whether the paper reports data scarcity, annotation cost, or data quality problems
3. **compute bottleneck**: strictly "yes" or "no", whether the paper reports training or inference compute limits
4. **constraint types**: choose from "data scarcity/annotation cost/compute resources/storage limits/real-time requirements/memory limits", separate multiple values with "/"
5. **data scale**: give concrete quantities such as "10K samples", "1M trajectories", "100 hours of video"
6. **training resources**: concrete descriptions such as "8xV100 GPU, 72 hours", or "not mentioned"
7. **inference efficiency**: include FPS, latency, memory footprint, such as "30FPS, 50ms latency"
8. **performance**: focus on success rate and accuracy relative to resource cost
9. **tradeoff**: describe performance change under resource constraints, such as "accuracy drops 10%% when data is halved"

Special Focus Areas:
- data efficiency methods (augmentation, synthetic data, few-shot learning)
- compute efficiency methods (model compression, knowledge distillation, efficient architectures)
- resource overhead of multimodal fusion
- resource constraints of real-time inference
- resource limits in embodied agents

Output Requirements:
1. Use English for all fields
2. Use "not mentioned" for missing information
3. Escape commas in fields with double quotes
4. Provide quantitative data when available
5. Focus on resource-related innovations and constraints
`

// BuildMessages assembles the three-turn chat prompt for one paper. The
// paper content rides in the assistant turn so the user turn stays a
// stable instruction block.
func BuildMessages(keyword, paperText string) []providers.Message {
	return []providers.Message{
		{
			Role: "system",
			Content: fmt.Sprintf("You are a research expert specializing in Vision Language Action (VLA) models and resource-constrained AI systems. "+
				"Your expertise focuses on analyzing data bottlenecks and computational bottlenecks in VLA models. "+
				"You are conducting a comprehensive survey on 'Resource-Constrained Vision Language Action Models' in the field of [%s].", keyword),
		},
		{
			Role: "assistant",
			Content: "I'll analyze this VLA-related paper with special attention to resource constraints, data bottlenecks, " +
				"and computational bottlenecks. Here's the complete paper content: " + paperText,
		},
		{
			Role:    "user",
			Content: fmt.Sprintf(analysisInstructions, strings.Join(Columns, ",")),
		},
	}
}
