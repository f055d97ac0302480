package model

// 步骤列表的增删改均返回新切片, 不修改入参

// AddStep 在末尾追加一个步骤
func AddStep(steps []TestStep, action, expectedResult string) []TestStep {
	out := make([]TestStep, 0, len(steps)+1)
	out = append(out, steps...)
	out = append(out, TestStep{
		StepNumber:     len(steps) + 1,
		Action:         action,
		ExpectedResult: expectedResult,
	})
	return out
}

// RemoveStep 删除 index(0 起) 处的步骤并重新编号; 越界时原样返回副本
func RemoveStep(steps []TestStep, index int) []TestStep {
	out := make([]TestStep, 0, len(steps))
	for i, step := range steps {
		if i == index {
			continue
		}
		out = append(out, step)
	}
	return RenumberSteps(out)
}

// UpdateStep 修改 index 处步骤的内容
func UpdateStep(steps []TestStep, index int, action, expectedResult string) []TestStep {
	out := make([]TestStep, len(steps))
	copy(out, steps)
	if index >= 0 && index < len(out) {
		out[index].Action = action
		out[index].ExpectedResult = expectedResult
	}
	return out
}

// RenumberSteps 按数组位置重写 StepNumber 为 1..N
func RenumberSteps(steps []TestStep) []TestStep {
	out := make([]TestStep, len(steps))
	for i, step := range steps {
		step.StepNumber = i + 1
		out[i] = step
	}
	return out
}

// StepsDense 编号是否与位置一一对应
func StepsDense(steps []TestStep) bool {
	for i, step := range steps {
		if step.StepNumber != i+1 {
			return false
		}
	}
	return true
}
