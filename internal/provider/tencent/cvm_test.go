package tencent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	cvm "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/cvm/v20170312"
)

func TestConvertCVMToInstance(t *testing.T) {
	inst := &cvm.Instance{
		InstanceId:    common.StringPtr("ins-19v0a2b3"),
		InstanceName:  common.StringPtr("fallback-name"),
		InstanceType:  common.StringPtr("S5.MEDIUM4"),
		InstanceState: common.StringPtr("RUNNING"),
		Placement:     &cvm.Placement{Zone: common.StringPtr("ap-guangzhou-3")},
		Tags: []*cvm.Tag{
			{Key: common.StringPtr("Name"), Value: common.StringPtr("api-server")},
			{Key: common.StringPtr("Env"), Value: common.StringPtr("prod")},
		},
		PublicIpAddresses:  common.StringPtrs([]string{"119.29.10.20"}),
		PrivateIpAddresses: common.StringPtrs([]string{"10.0.0.5", "10.0.0.6"}),
	}

	got := convertCVMToInstance(inst)

	assert.Equal(t, "api-server", got.Name)
	assert.Equal(t, "ins-19v0a2b3", got.ID)
	assert.Equal(t, "S5.MEDIUM4", got.Type)
	assert.Equal(t, "RUNNING", got.State)
	assert.Equal(t, "ap-guangzhou-3", got.AvailabilityZone)
	assert.Equal(t, "119.29.10.20", got.PublicIP)
	assert.Equal(t, []string{"10.0.0.5", "10.0.0.6"}, got.PrivateIPs)
}

func TestConvertCVMToInstanceNameFallsBackToInstanceName(t *testing.T) {
	inst := &cvm.Instance{
		InstanceId:   common.StringPtr("ins-19v0a2b3"),
		InstanceName: common.StringPtr("未命名"),
	}

	// 没有标签时退回实例名
	got := convertCVMToInstance(inst)
	assert.Equal(t, "未命名", got.Name)
}

func TestConvertCVMToInstanceWithoutPublicIP(t *testing.T) {
	inst := &cvm.Instance{
		InstanceId:         common.StringPtr("ins-19v0a2b3"),
		PrivateIpAddresses: common.StringPtrs([]string{"10.0.0.5"}),
	}

	got := convertCVMToInstance(inst)
	assert.Equal(t, "N/A", got.PublicIP)
}

func TestConvertCVMToInstanceBareFields(t *testing.T) {
	got := convertCVMToInstance(&cvm.Instance{})

	assert.Empty(t, got.Name)
	assert.Empty(t, got.ID)
	assert.Empty(t, got.State)
	assert.Empty(t, got.AvailabilityZone)
	assert.Equal(t, "N/A", got.PublicIP)
	assert.NotNil(t, got.PrivateIPs)
	assert.Empty(t, got.PrivateIPs)
}

func TestConvertCVMToInstanceSkipsNilAddresses(t *testing.T) {
	inst := &cvm.Instance{
		InstanceId:         common.StringPtr("ins-19v0a2b3"),
		PrivateIpAddresses: []*string{common.StringPtr("10.0.0.5"), nil},
	}

	got := convertCVMToInstance(inst)
	assert.Equal(t, []string{"10.0.0.5"}, got.PrivateIPs)
}
