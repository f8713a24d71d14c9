package domain

// SeedGraph returns the graph shown on first start: Newton's second law and
// the definition of acceleration, joined by a substitution edge.
func SeedGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			NewNode("node-1", Position{X: 250, Y: 50}, NodeData{
				Label:       "Equation of motion",
				Formula:     "F = ma",
				Description: "The force F acting on a body equals the product of its mass m and acceleration a.",
				Category:    CategoryMechanics,
			}),
			NewNode("node-2", Position{X: 100, Y: 250}, NodeData{
				Label:       "Definition of acceleration",
				Formula:     `a = \frac{dv}{dt}`,
				Description: "Acceleration a is the time derivative of velocity v.",
				Category:    CategoryMechanics,
			}),
		},
		Edges: []Edge{
			{ID: "e1-2", Source: "node-2", Target: "node-1", Animated: true, Label: "substitute"},
		},
		IDCount: 3,
	}
}
